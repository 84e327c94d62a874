package wirekit

import "bytes"

// Codec is the per-format SPI behind an Adapter. O is the format's option
// bundle. Implementations must be stateless and safe for concurrent use.
type Codec[O any] interface {
	// Name returns the short format name ("json", "xml").
	Name() string
	// Marshal encodes v (typically a pointer to a struct) using o.
	Marshal(v any, o O) ([]byte, error)
	// Unmarshal decodes data into v, which must be a non-nil pointer. Malformed
	// data yields a *FormatError; well-formed data that does not fit v yields a
	// *MappingError.
	Unmarshal(data []byte, v any, o O) error
}

// NullChecker is implemented by codecs whose format has a literal for an
// absent value. Deserialize treats such input like empty input.
type NullChecker interface {
	IsNull(data []byte) bool
}

// Option mutates an option bundle for a single call.
type Option[O any] func(*O)

func apply[O any](base O, opts []Option[O]) O {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}

// Document is the immutable serialized form of exactly one payload.
type Document struct {
	format string
	data   []byte
}

// NewDocument copies data into a Document tagged with format.
func NewDocument(format string, data []byte) Document {
	return Document{format: format, data: bytes.Clone(data)}
}

// Format returns the format name the document was produced with.
func (d Document) Format() string { return d.format }

// Bytes returns a copy of the document bytes.
func (d Document) Bytes() []byte { return bytes.Clone(d.data) }

// String returns the document text.
func (d Document) String() string { return string(d.data) }

// Len returns the document size in bytes.
func (d Document) Len() int { return len(d.data) }

// IsZero reports whether the document holds no bytes.
func (d Document) IsZero() bool { return len(d.data) == 0 }

// isBlank reports whether data is empty or whitespace only.
func isBlank(data []byte) bool { return len(bytes.TrimSpace(data)) == 0 }
