// Package envelope implements the Interchange tagged union: a fixed container
// whose Body holds exactly one payload sub-tree. The payload's own root
// element name is the discriminator; there is no separate type field.
//
//	<Interchange>
//	  <Body>
//	    <UniversalShipment version="1.1">...</UniversalShipment>
//	  </Body>
//	</Interchange>
//
// An envelope is either Empty (no Body child) or Populated (one child, whose
// tag may or may not be known to the registry). Envelopes are not mutated
// after construction.
package envelope

import (
	"encoding/xml"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/xmlwire"
)

// Element names of the container.
const (
	RootElement = "Interchange"
	BodyElement = "Body"
)

var (
	// ErrEmpty is returned by strict extraction from an envelope without data.
	ErrEmpty = errors.New("envelope: no data")
	// ErrKindMismatch is returned by strict extraction when the requested type
	// is not the type registered for the embedded element.
	ErrKindMismatch = errors.New("envelope: payload kind mismatch")
)

// SerializationError reports a payload whose dynamic type cannot be
// serialized to markup.
type SerializationError struct {
	Type reflect.Type
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("envelope: cannot serialize %v: %v", e.Type, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Envelope is the Interchange root.
type Envelope struct {
	XMLName xml.Name `xml:"Interchange"`
	Body    *Body    `xml:"Body"`
}

// Body is the single payload slot. Only Any[0] is ever meaningful.
type Body struct {
	Any []Node
}

func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var inner strings.Builder
	for _, n := range b.Any {
		inner.WriteString(n.OuterXML())
	}
	return e.EncodeElement(struct {
		Inner string `xml:",innerxml"`
	}{inner.String()}, start)
}

func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return b.decode(d, declare(nil, start.Attr))
}

// decode reads the children of a Body element. scope holds the prefix
// declarations of the Body and its ancestors.
func (b *Body) decode(d *xml.Decoder, scope []xml.Attr) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n, err := decodeNode(d, t, scope)
			if err != nil {
				return err
			}
			b.Any = append(b.Any, n)
		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML decodes the container, carrying the prefixes declared on
// Interchange and Body into the payload node.
func (e *Envelope) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != RootElement {
		return xml.UnmarshalError("expected element type <" + RootElement + "> but have <" + start.Name.Local + ">")
	}
	e.XMLName = start.Name
	scope := declare(nil, start.Attr)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != BodyElement {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if e.Body == nil {
				e.Body = &Body{}
			}
			if err := e.Body.decode(d, declare(scope, t.Attr)); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// codec serializes embedded payloads: no declaration, no indentation.
var (
	codec       xmlwire.Codec
	nodeOptions = xmlwire.Options{OmitDeclaration: true}
	adapter     = xmlwire.New[Envelope]()
)

// Build wraps payload in a new envelope. The payload is serialized with its
// dynamic type, so any value of the six root types (or any other markup
// serializable struct) may be passed.
func Build(payload any) (*Envelope, error) {
	if isNil(payload) {
		return nil, fmt.Errorf("envelope: build: %w", wirekit.ErrNilInput)
	}
	data, err := codec.Marshal(payload, nodeOptions)
	if err != nil {
		return nil, &SerializationError{Type: reflect.TypeOf(payload), Err: err}
	}
	node, err := ParseNode(data)
	if err != nil {
		return nil, &SerializationError{Type: reflect.TypeOf(payload), Err: err}
	}
	return &Envelope{Body: &Body{Any: []Node{node}}}, nil
}

// HasData reports whether the envelope is Populated.
func (e *Envelope) HasData() bool {
	return e != nil && e.Body != nil && len(e.Body.Any) > 0
}

// ElementName returns the local tag of the embedded payload.
func (e *Envelope) ElementName() (string, bool) {
	if !e.HasData() {
		return "", false
	}
	return e.Body.Any[0].LocalName(), true
}

// Kind identifies the embedded payload through the registry. It reports false
// for Empty envelopes and unknown tags.
func (e *Envelope) Kind() (Kind, bool) {
	name, ok := e.ElementName()
	if !ok {
		return 0, false
	}
	return KindFromElement(name)
}

// DataType returns the concrete payload type, or nil when the kind is unknown.
func (e *Envelope) DataType() reflect.Type {
	k, ok := e.Kind()
	if !ok {
		return nil
	}
	return k.Type()
}

// DataTypeName returns the name of DataType, or "" when unknown.
func (e *Envelope) DataTypeName() string {
	if t := e.DataType(); t != nil {
		return t.Name()
	}
	return ""
}

// Payload returns the embedded node rendered as a standalone element.
func (e *Envelope) Payload() (string, bool) {
	if !e.HasData() {
		return "", false
	}
	return e.Body.Any[0].OuterXML(), true
}

// ExtractData deserializes the embedded payload as T. It returns nil on any
// failure. The registry is not consulted: extracting with the wrong T usually,
// but not necessarily, returns nil. Use ExtractStrict or check Kind first when
// that matters.
func ExtractData[T any](e *Envelope) *T {
	v, _ := TryExtractData[T](e)
	return v
}

// TryExtractData is ExtractData reporting success separately.
func TryExtractData[T any](e *Envelope) (*T, bool) {
	src, ok := e.Payload()
	if !ok {
		return nil, false
	}
	return xmlwire.New[T]().TryDeserialize([]byte(src))
}

// ExtractStrict deserializes the embedded payload as T only when the registry
// maps the embedded element to T. Deserialization errors are returned as-is.
func ExtractStrict[T any](e *Envelope) (*T, error) {
	src, ok := e.Payload()
	if !ok {
		return nil, ErrEmpty
	}
	want := reflect.TypeFor[T]()
	if got := e.DataType(); got != want {
		name, _ := e.ElementName()
		return nil, fmt.Errorf("%w: <%s> does not carry %v", ErrKindMismatch, name, want)
	}
	v, err := xmlwire.New[T]().Deserialize([]byte(src))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrEmpty
	}
	return v, nil
}

// ContainsDataType reports whether the registry maps the embedded element to T.
func ContainsDataType[T any](e *Envelope) bool {
	return e.DataType() == reflect.TypeFor[T]()
}

// Data extracts the embedded payload as its registered type. It reports false
// for Empty envelopes, unknown tags and undecodable payloads.
func Data(e *Envelope) (any, bool) {
	k, ok := e.Kind()
	if !ok {
		return nil, false
	}
	src, _ := e.Payload()
	v := k.New()
	if err := codec.Unmarshal([]byte(src), v, nodeOptions); err != nil {
		return nil, false
	}
	return v, true
}

// Marshal builds an envelope around payload and serializes it.
func Marshal(payload any, opts ...wirekit.Option[xmlwire.Options]) (wirekit.Document, error) {
	env, err := Build(payload)
	if err != nil {
		return wirekit.Document{}, err
	}
	return adapter.Serialize(env, opts...)
}

// Parse deserializes an envelope document. Empty input yields (nil, nil).
func Parse(data []byte) (*Envelope, error) {
	return adapter.Deserialize(data)
}

// Unmarshal parses an envelope document and extracts its payload as T. It
// returns (nil, nil) for empty input and nil when extraction fails.
func Unmarshal[T any](data []byte) (*T, error) {
	env, err := Parse(data)
	if err != nil || env == nil {
		return nil, err
	}
	return ExtractData[T](env), nil
}

// TryUnmarshal is Unmarshal reporting every failure through the boolean.
func TryUnmarshal[T any](data []byte) (*T, bool) {
	env, ok := adapter.TryDeserialize(data)
	if !ok {
		return nil, false
	}
	return TryExtractData[T](env)
}

// Adapter returns the markup adapter for envelopes.
func Adapter() *xmlwire.Adapter[Envelope] { return adapter }

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
