// Package xmlwire is the markup Format Adapter. It is built on encoding/xml;
// payload types control their element names through XMLName fields and xml
// struct tags.
package xmlwire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/reoring/wirekit"
)

// FormatName is the name reported by Codec.Name and stored in documents.
const FormatName = "xml"

// Options controls markup output.
type Options struct {
	Indent          bool   // Indent nested elements by two spaces.
	OmitDeclaration bool   // Skip the <?xml ...?> declaration line.
	Namespace       string // Default namespace placed on the root element.
}

// DefaultOptions returns indented output with a declaration line.
func DefaultOptions() Options { return Options{Indent: true} }

// Adapter is the markup adapter for T.
type Adapter[T any] = wirekit.Adapter[T, Options]

// New returns a markup adapter for T using DefaultOptions with opts applied.
func New[T any](opts ...wirekit.Option[Options]) *Adapter[T] {
	base := DefaultOptions()
	for _, opt := range opts {
		opt(&base)
	}
	return wirekit.NewAdapter[T](Codec{}, base)
}

// NoIndent disables indentation.
func NoIndent() wirekit.Option[Options] { return func(o *Options) { o.Indent = false } }

// OmitDeclaration suppresses the declaration line.
func OmitDeclaration() wirekit.Option[Options] {
	return func(o *Options) { o.OmitDeclaration = true }
}

// Namespace sets the default namespace of the root element.
func Namespace(ns string) wirekit.Option[Options] { return func(o *Options) { o.Namespace = ns } }

// Codec implements wirekit.Codec for markup.
type Codec struct{}

func (Codec) Name() string { return FormatName }

func (Codec) Marshal(v any, o Options) ([]byte, error) {
	var buf bytes.Buffer
	if !o.OmitDeclaration {
		if o.Indent {
			buf.WriteString(xml.Header)
		} else {
			buf.WriteString(strings.TrimSuffix(xml.Header, "\n"))
		}
	}
	enc := xml.NewEncoder(&buf)
	if o.Indent {
		enc.Indent("", "  ")
	}
	var err error
	if o.Namespace != "" {
		err = enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Space: o.Namespace, Local: RootName(v)}})
	} else {
		err = enc.Encode(v)
	}
	if err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Unmarshal(data []byte, v any, _ Options) error {
	if off, err := WellFormed(data); err != nil {
		return &wirekit.FormatError{Format: FormatName, Offset: off, Err: err}
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return &wirekit.MappingError{Format: FormatName, Type: targetType(v), Err: err}
	}
	return nil
}

var (
	errNoRoot        = errors.New("no root element")
	errMultipleRoots = errors.New("multiple root elements")
	errOutsideRoot   = errors.New("text outside root element")
)

// WellFormed walks every token of data and reports the first syntax error
// together with its byte offset. Exactly one root element is allowed;
// only whitespace, comments and processing instructions may surround it.
func WellFormed(data []byte) (int64, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	depth := 0
	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			if !sawRoot {
				return dec.InputOffset(), errNoRoot
			}
			return -1, nil
		}
		if err != nil {
			return dec.InputOffset(), err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return off, errMultipleRoots
			}
			sawRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.Trim(t, " \t\r\n\ufeff")) > 0 {
				return off, errOutsideRoot
			}
		}
	}
}

// RootName returns the element name v marshals to: the XMLName tag when
// present, otherwise the type name.
func RootName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName("XMLName"); ok && f.Type == reflect.TypeFor[xml.Name]() {
			tag, _, _ := strings.Cut(f.Tag.Get("xml"), ",")
			if i := strings.LastIndexByte(tag, ' '); i >= 0 {
				tag = tag[i+1:]
			}
			if tag != "" {
				return tag
			}
		}
	}
	return t.Name()
}

func targetType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
