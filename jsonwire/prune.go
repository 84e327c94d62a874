package jsonwire

import (
	"bytes"
	"encoding"
	"reflect"

	j "github.com/goccy/go-json"

	"github.com/reoring/wirekit/internal/fields"
)

var (
	tyJSONUnmarshaler = reflect.TypeFor[j.Unmarshaler]()
	tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// pruneKeys drops object members whose key does not exactly match a field key
// of the destination type, so that the case-insensitive decoder only sees exact
// matches.
func pruneKeys(data []byte, target reflect.Type) ([]byte, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return j.Marshal(prune(tree, target))
}

func prune(v any, t reflect.Type) any {
	if t == nil {
		return v
	}
	t = fields.Indirect(t)
	if customDecoding(t) {
		return v
	}
	switch n := v.(type) {
	case map[string]any:
		switch t.Kind() {
		case reflect.Struct:
			for k, child := range n {
				f, ok := fields.Lookup(t, "json", k)
				if !ok {
					delete(n, k)
					continue
				}
				n[k] = prune(child, f.Type)
			}
		case reflect.Map:
			for k, child := range n {
				n[k] = prune(child, t.Elem())
			}
		}
	case []any:
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			for i := range n {
				n[i] = prune(n[i], t.Elem())
			}
		}
	}
	return v
}

func customDecoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return pt.Implements(tyJSONUnmarshaler) || pt.Implements(tyTextUnmarshaler)
}
