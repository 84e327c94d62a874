package wirekit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// chunkSize bounds how much is read or written between context checks.
const chunkSize = 32 << 10

// SerializeToFile serializes v and writes it to path, creating or truncating
// the file. Concurrent writers to the same path are not coordinated.
func (a *Adapter[T, O]) SerializeToFile(path string, v *T, opts ...Option[O]) error {
	return a.SerializeToFileContext(context.Background(), path, v, opts...)
}

// SerializeToFileContext is SerializeToFile with cooperative cancellation.
func (a *Adapter[T, O]) SerializeToFileContext(ctx context.Context, path string, v *T, opts ...Option[O]) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("serialize to file: empty path: %w", ErrNilInput)
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	doc, err := a.Serialize(v, opts...)
	if err != nil {
		return err
	}
	if err := writeFile(ctx, path, doc.data); err != nil {
		return err
	}
	a.log.Debug("document written", zap.String("path", path), zap.Int("bytes", doc.Len()))
	return nil
}

// DeserializeFromFile reads path and deserializes its contents. A missing
// file fails with ErrFileNotFound, never with a *FormatError.
func (a *Adapter[T, O]) DeserializeFromFile(path string, opts ...Option[O]) (*T, error) {
	return a.DeserializeFromFileContext(context.Background(), path, opts...)
}

// DeserializeFromFileContext is DeserializeFromFile with cooperative
// cancellation.
func (a *Adapter[T, O]) DeserializeFromFileContext(ctx context.Context, path string, opts ...Option[O]) (*T, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("deserialize from file: empty path: %w", ErrNilInput)
	}
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("document read", zap.String("path", path), zap.Int("bytes", len(data)))
	return a.Deserialize(data, opts...)
}

// ReadFile reads path honouring ctx. A missing path yields ErrFileNotFound.
func ReadFile(ctx context.Context, path string) ([]byte, error) { return readFile(ctx, path) }

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return nil, err
	}
	defer f.Close()

	var out bytes.Buffer
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}
		n, err := f.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func writeFile(ctx context.Context, path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	for len(data) > 0 {
		if cerr := ctx.Err(); cerr != nil {
			return canceled(cerr)
		}
		n := min(len(data), chunkSize)
		if _, err := f.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
