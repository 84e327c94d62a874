// Package fields enumerates the wire keys of struct types the way
// encoding/json style codecs resolve them.
package fields

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Field is one visible wire key of a struct.
type Field struct {
	Name  string
	Type  reflect.Type
	Index []int
}

var cache sync.Map // map[cacheKey][]Field

type cacheKey struct {
	ty  reflect.Type
	tag string
}

// Of returns the visible fields of struct type ty resolved through structTag.
// Embedded structs without an explicit name are flattened; among fields with
// the same key the shallowest wins, then the single explicitly tagged one. The
// result is cached per type and must not be modified.
func Of(ty reflect.Type, structTag string) []Field {
	key := cacheKey{ty, structTag}
	if cached, ok := cache.Load(key); ok {
		return cached.([]Field)
	}
	fs := walk(ty, structTag)
	cache.Store(key, fs)
	return fs
}

// Lookup returns the field of ty whose key equals name exactly.
func Lookup(ty reflect.Type, structTag, name string) (Field, bool) {
	for _, f := range Of(ty, structTag) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Indirect strips pointer types.
func Indirect(ty reflect.Type) reflect.Type {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}
	return ty
}

func walk(ty reflect.Type, structTag string) []Field {
	if ty.Kind() != reflect.Struct {
		panic("fields: not a struct: " + ty.String())
	}

	type queued struct {
		Type        reflect.Type
		ParentIndex []int
	}

	type candidate struct {
		Explicit bool
		Field    Field
	}

	queue := []queued{{Type: ty}}
	candidates := map[string][]candidate{}
	var order []string
	// shallowest depth each struct type was expanded at
	visited := map[reflect.Type]int{}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		depth := len(item.ParentIndex)
		if seen, ok := visited[item.Type]; ok && seen < depth {
			continue
		}
		visited[item.Type] = depth

		for idx := range item.Type.NumField() {
			fi := item.Type.Field(idx)
			if !fi.IsExported() && !fi.Anonymous {
				continue
			}

			name, explicit := nameOf(fi, structTag)
			if name == "" {
				continue
			}

			parent := item.ParentIndex
			index := append(parent[:len(parent):len(parent)], fi.Index...)

			if fi.Anonymous && !explicit {
				et := Indirect(fi.Type)
				if et.Kind() == reflect.Struct {
					queue = append(queue, queued{et, index})
				}
				continue
			}
			if !fi.IsExported() {
				continue
			}

			if len(candidates[name]) == 0 {
				order = append(order, name)
			}
			candidates[name] = append(candidates[name], candidate{
				Explicit: explicit,
				Field:    Field{Name: name, Type: fi.Type, Index: index},
			})
		}
	}

	var out []Field
	for _, name := range order {
		cs := candidates[name]
		depth := len(cs[0].Field.Index)
		visible := slices.DeleteFunc(slices.Clone(cs), func(c candidate) bool { return len(c.Field.Index) != depth })
		if len(visible) == 1 {
			out = append(out, visible[0].Field)
			continue
		}
		explicit := slices.DeleteFunc(visible, func(c candidate) bool { return !c.Explicit })
		if len(explicit) == 1 {
			out = append(out, explicit[0].Field)
		}
		// ambiguous keys are dropped, as encoding/json does
	}
	return out
}

func nameOf(fi reflect.StructField, structTag string) (name string, explicit bool) {
	tag := fi.Tag.Get(structTag)
	switch {
	case tag == "":
		return fi.Name, false
	case tag == "-":
		return "", true
	}
	alias, _, _ := strings.Cut(tag, ",")
	if alias == "" {
		return fi.Name, false
	}
	return alias, true
}
