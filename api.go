package wirekit

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Adapter converts values of type T to and from one wire format. It holds no
// mutable state after construction and may be shared across goroutines.
type Adapter[T any, O any] struct {
	codec    Codec[O]
	defaults O
	log      *zap.Logger
}

// NewAdapter returns an Adapter for T backed by c, using defaults as the base
// options of every call.
func NewAdapter[T any, O any](c Codec[O], defaults O) *Adapter[T, O] {
	return &Adapter[T, O]{codec: c, defaults: defaults, log: zap.NewNop()}
}

// WithLogger returns a copy of the adapter that logs file operations to l.
func (a *Adapter[T, O]) WithLogger(l *zap.Logger) *Adapter[T, O] {
	if l == nil {
		l = zap.NewNop()
	}
	cp := *a
	cp.log = l.With(zap.String("format", a.codec.Name()), zap.Stringer("type", typeOf[T]()))
	return &cp
}

// Format returns the name of the adapter's wire format.
func (a *Adapter[T, O]) Format() string { return a.codec.Name() }

// Options returns the adapter's default options with opts applied.
func (a *Adapter[T, O]) Options(opts ...Option[O]) O { return apply(a.defaults, opts) }

// Serialize encodes v. It fails with ErrNilInput when v is nil.
func (a *Adapter[T, O]) Serialize(v *T, opts ...Option[O]) (Document, error) {
	if v == nil {
		return Document{}, fmt.Errorf("serialize %v: %w", typeOf[T](), ErrNilInput)
	}
	data, err := a.codec.Marshal(v, apply(a.defaults, opts))
	if err != nil {
		return Document{}, err
	}
	return Document{format: a.codec.Name(), data: data}, nil
}

// Deserialize decodes data into a new T. Empty or whitespace-only input, and
// the format's null literal when it has one, yield (nil, nil). Malformed input fails with *FormatError and input that
// cannot populate T fails with *MappingError.
func (a *Adapter[T, O]) Deserialize(data []byte, opts ...Option[O]) (*T, error) {
	if isBlank(data) {
		return nil, nil
	}
	if nc, ok := a.codec.(NullChecker); ok && nc.IsNull(data) {
		return nil, nil
	}
	v := new(T)
	if err := a.codec.Unmarshal(data, v, apply(a.defaults, opts)); err != nil {
		return nil, err
	}
	return v, nil
}

// DeserializeString is Deserialize for text input.
func (a *Adapter[T, O]) DeserializeString(s string, opts ...Option[O]) (*T, error) {
	return a.Deserialize([]byte(s), opts...)
}

// Clone deep-copies v by serializing and deserializing it with the same
// options. The result never aliases v.
func (a *Adapter[T, O]) Clone(v *T, opts ...Option[O]) (*T, error) {
	doc, err := a.Serialize(v, opts...)
	if err != nil {
		return nil, err
	}
	out, err := a.Deserialize(doc.data, opts...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrCloneFailed
	}
	return out, nil
}

// TryDeserialize decodes data, reporting failure through the boolean result
// instead of an error. It never panics.
func (a *Adapter[T, O]) TryDeserialize(data []byte, opts ...Option[O]) (v *T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, false
		}
	}()
	v, err := a.Deserialize(data, opts...)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// IsValid reports whether data deserializes into T.
func (a *Adapter[T, O]) IsValid(data []byte, opts ...Option[O]) bool {
	_, ok := a.TryDeserialize(data, opts...)
	return ok
}

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }
