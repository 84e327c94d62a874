// Package jsonwire is the object-notation Format Adapter, backed by
// github.com/goccy/go-json.
//
// Defaults: indented output, null-valued members omitted on write, and
// case-insensitive key matching on read. Null omission makes
// Serialize(Deserialize(doc)) lossy for explicit nulls; use KeepNulls when
// that matters.
package jsonwire

import (
	"bytes"
	"errors"
	"reflect"

	j "github.com/goccy/go-json"

	"github.com/reoring/wirekit"
)

// FormatName is the name reported by Codec.Name and stored in documents.
const FormatName = "json"

// Options controls object-notation output and matching.
type Options struct {
	Indent          bool // Indent output by two spaces.
	OmitNull        bool // Drop object members whose value is null.
	CaseInsensitive bool // Match keys to fields ignoring case on read.
}

// DefaultOptions returns indented output with nulls omitted and
// case-insensitive reads.
func DefaultOptions() Options {
	return Options{Indent: true, OmitNull: true, CaseInsensitive: true}
}

// Adapter is the object-notation adapter for T.
type Adapter[T any] = wirekit.Adapter[T, Options]

// New returns an object-notation adapter for T using DefaultOptions with opts
// applied.
func New[T any](opts ...wirekit.Option[Options]) *Adapter[T] {
	base := DefaultOptions()
	for _, opt := range opts {
		opt(&base)
	}
	return wirekit.NewAdapter[T](Codec{}, base)
}

// Compact disables indentation.
func Compact() wirekit.Option[Options] { return func(o *Options) { o.Indent = false } }

// KeepNulls writes null-valued members instead of omitting them.
func KeepNulls() wirekit.Option[Options] { return func(o *Options) { o.OmitNull = false } }

// CaseSensitive ignores keys that do not match a field key exactly.
func CaseSensitive() wirekit.Option[Options] {
	return func(o *Options) { o.CaseInsensitive = false }
}

// Codec implements wirekit.Codec for object notation.
type Codec struct{}

func (Codec) Name() string { return FormatName }

var null = []byte("null")

// IsNull reports whether data is the top-level null literal.
func (Codec) IsNull(data []byte) bool { return bytes.Equal(bytes.TrimSpace(data), null) }

var _ wirekit.NullChecker = Codec{}

func (Codec) Marshal(v any, o Options) ([]byte, error) {
	data, err := j.Marshal(v)
	if err != nil {
		return nil, err
	}
	if o.OmitNull {
		if data, err = StripNulls(data); err != nil {
			return nil, err
		}
	}
	if !o.Indent {
		return data, nil
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Unmarshal(data []byte, v any, o Options) error {
	if !j.Valid(data) {
		return syntaxError(data)
	}
	if !o.CaseInsensitive {
		pruned, err := pruneKeys(data, reflect.TypeOf(v))
		if err != nil {
			return &wirekit.MappingError{Format: FormatName, Type: targetType(v), Err: err}
		}
		data = pruned
	}
	if err := j.Unmarshal(data, v); err != nil {
		return &wirekit.MappingError{Format: FormatName, Type: targetType(v), Err: err}
	}
	return nil
}

var errInvalid = errors.New("invalid json")

// syntaxError re-parses data that failed j.Valid to recover the decoder's
// error and offset.
func syntaxError(data []byte) *wirekit.FormatError {
	fe := &wirekit.FormatError{Format: FormatName, Offset: -1, Err: errInvalid}
	var tmp any
	if err := j.Unmarshal(data, &tmp); err != nil {
		fe.Err = err
		var se *j.SyntaxError
		if errors.As(err, &se) {
			fe.Offset = se.Offset
		}
	}
	return fe
}

func targetType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
