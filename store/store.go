// Package store archives serialized payload documents in a BoltDB file chosen
// by the caller. Values are stored as documents produced by any wirekit
// Adapter, tagged with their format name.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/reoring/wirekit"
)

var (
	// ErrNotFound is returned when the bucket or key does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrFormatMismatch is returned when a stored document was written in a
	// different format than the adapter reading it.
	ErrFormatMismatch = errors.New("store: format mismatch")
)

// formatSep separates the format name from the document bytes.
const formatSep = 0

// Store is an open archive. It is safe for concurrent use; bbolt serializes
// writers.
type Store struct {
	db  *bbolt.DB
	log *zap.Logger
}

// Option configures Open.
type Option func(*Store)

// WithLogger sets the logger used for archive operations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens or creates the archive at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("archive", path))
	return s, nil
}

// Close closes the archive.
func (s *Store) Close() error { return s.db.Close() }

// PutDocument stores doc under bucket/key, replacing any previous value.
func (s *Store) PutDocument(ctx context.Context, bucket, key string, doc wirekit.Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
	}
	if bucket == "" || key == "" {
		return fmt.Errorf("store: empty bucket or key: %w", wirekit.ErrNilInput)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), encodeRecord(doc))
	})
	if err != nil {
		return err
	}
	s.log.Debug("document stored",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("format", doc.Format()),
		zap.Int("bytes", doc.Len()),
	)
	return nil
}

// Document loads the document stored under bucket/key.
func (s *Store) Document(ctx context.Context, bucket, key string) (wirekit.Document, error) {
	if err := ctx.Err(); err != nil {
		return wirekit.Document{}, fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
	}
	var doc wirekit.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return fmt.Errorf("%w: bucket %q", ErrNotFound, bucket)
		}
		v := b.Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, bucket, key)
		}
		// v is only valid inside the transaction; decodeRecord copies it
		var err error
		doc, err = decodeRecord(v)
		return err
	})
	return doc, err
}

// Delete removes bucket/key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists the keys of bucket in byte order.
func (s *Store) Keys(ctx context.Context, bucket string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", wirekit.ErrCanceled, err)
	}
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Put serializes v with a and stores it under bucket/key.
func Put[T, O any](ctx context.Context, s *Store, a *wirekit.Adapter[T, O], bucket, key string, v *T) error {
	doc, err := a.Serialize(v)
	if err != nil {
		return err
	}
	return s.PutDocument(ctx, bucket, key, doc)
}

// Get loads bucket/key and deserializes it with a. The stored format must
// match the adapter's.
func Get[T, O any](ctx context.Context, s *Store, a *wirekit.Adapter[T, O], bucket, key string) (*T, error) {
	doc, err := s.Document(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if doc.Format() != a.Format() {
		return nil, fmt.Errorf("%w: stored %s, adapter %s", ErrFormatMismatch, doc.Format(), a.Format())
	}
	return a.Deserialize(doc.Bytes())
}

func encodeRecord(doc wirekit.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(doc.Format())
	buf.WriteByte(formatSep)
	buf.Write(doc.Bytes())
	return buf.Bytes()
}

func decodeRecord(v []byte) (wirekit.Document, error) {
	i := bytes.IndexByte(v, formatSep)
	if i < 0 {
		return wirekit.Document{}, errors.New("store: corrupt record")
	}
	return wirekit.NewDocument(string(v[:i]), v[i+1:]), nil
}
