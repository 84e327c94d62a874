package jsonwire

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
	written      int
}

// rewriter re-emits a token stream as compact JSON, optionally dropping
// object members.
type rewriter struct {
	dec   *j.Decoder
	out   bytes.Buffer
	stack []frame
	key   string
	// drop decides whether the member (key, tok) is skipped. Only scalar
	// tokens are offered.
	drop func(key string, tok j.Token) bool
}

// StripNulls returns data with every null-valued object member removed.
// Member order is preserved; null array elements are kept.
func StripNulls(data []byte) ([]byte, error) {
	rw := &rewriter{drop: func(_ string, tok j.Token) bool { return tok == nil }}
	return rw.run(data)
}

func (r *rewriter) run(data []byte) ([]byte, error) {
	r.dec = j.NewDecoder(bytes.NewReader(data))
	r.dec.UseNumber()
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return r.out.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
		if err := r.emit(tok); err != nil {
			return nil, err
		}
	}
}

func (r *rewriter) top() *frame {
	if n := len(r.stack); n > 0 {
		return &r.stack[n-1]
	}
	return nil
}

func (r *rewriter) emit(tok j.Token) error {
	top := r.top()
	if s, ok := tok.(string); ok && top != nil && top.kind == kindObject && top.expectingKey {
		r.key = s
		top.expectingKey = false
		return nil
	}

	if d, ok := tok.(j.Delim); ok && (d == '}' || d == ']') {
		r.out.WriteByte(byte(d))
		r.stack = r.stack[:len(r.stack)-1]
		r.valueDone()
		return nil
	}

	if top != nil && top.kind == kindObject {
		if _, isDelim := tok.(j.Delim); !isDelim && r.drop != nil && r.drop(r.key, tok) {
			top.expectingKey = true
			return nil
		}
	}
	if err := r.separator(); err != nil {
		return err
	}

	switch v := tok.(type) {
	case j.Delim:
		r.out.WriteByte(byte(v))
		if v == '{' {
			r.stack = append(r.stack, frame{kind: kindObject, expectingKey: true})
		} else {
			r.stack = append(r.stack, frame{kind: kindArray})
		}
		return nil
	case string:
		if err := r.writeString(v); err != nil {
			return err
		}
	case j.Number:
		r.out.WriteString(string(v))
	case bool:
		if v {
			r.out.WriteString("true")
		} else {
			r.out.WriteString("false")
		}
	case nil:
		r.out.WriteString("null")
	default:
		b, err := j.Marshal(v)
		if err != nil {
			return err
		}
		r.out.Write(b)
	}
	r.valueDone()
	return nil
}

// separator writes the comma and, inside objects, the pending key.
func (r *rewriter) separator() error {
	top := r.top()
	if top == nil {
		return nil
	}
	if top.written > 0 {
		r.out.WriteByte(',')
	}
	top.written++
	if top.kind == kindObject {
		if err := r.writeString(r.key); err != nil {
			return err
		}
		r.out.WriteByte(':')
	}
	return nil
}

func (r *rewriter) valueDone() {
	if top := r.top(); top != nil && top.kind == kindObject {
		top.expectingKey = true
	}
}

func (r *rewriter) writeString(s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return err
	}
	r.out.Write(b)
	return nil
}
