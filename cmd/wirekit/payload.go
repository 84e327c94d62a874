package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/envelope"
	"github.com/reoring/wirekit/jsonwire"
	"github.com/reoring/wirekit/xmlwire"
)

var (
	errKindRequired = errors.New("--kind is required for JSON input")
	errUnknownKind  = errors.New("unknown payload kind")
)

func (a *app) xmlOptions() xmlwire.Options {
	o := xmlwire.DefaultOptions()
	a.cfg.XMLOptions()(&o)
	return o
}

func (a *app) jsonOptions() jsonwire.Options {
	o := jsonwire.DefaultOptions()
	a.cfg.JSONOptions()(&o)
	return o
}

// isMarkup reports whether data looks like an XML document.
func isMarkup(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\ufeff"), []byte("<"))
}

// payload is a decoded input document.
type payload struct {
	value  any
	kind   envelope.Kind
	format string // format the document was read in
}

// loadPayload reads one of the six payload kinds from path. Markup input is
// identified by its root element and may be a bare payload or an Interchange
// envelope. JSON input needs kindName.
func (a *app) loadPayload(ctx context.Context, path, kindName string) (payload, error) {
	v, k, format, err := a.decodePayload(ctx, path, kindName)
	if err != nil {
		return payload{}, err
	}
	a.log.Debug("payload loaded", zap.String("path", path), zap.Stringer("kind", k), zap.String("format", format))
	return payload{value: v, kind: k, format: format}, nil
}

func (a *app) decodePayload(ctx context.Context, path, kindName string) (any, envelope.Kind, string, error) {
	data, err := wirekit.ReadFile(ctx, path)
	if err != nil {
		return nil, 0, "", err
	}
	var want envelope.Kind
	if kindName != "" {
		k, ok := envelope.ParseKind(kindName)
		if !ok {
			return nil, 0, "", fmt.Errorf("%w: %q", errUnknownKind, kindName)
		}
		want = k
	}

	if !isMarkup(data) {
		if want == 0 {
			return nil, 0, "", fmt.Errorf("%s: %w", path, errKindRequired)
		}
		if (jsonwire.Codec{}).IsNull(data) {
			return nil, 0, "", fmt.Errorf("%s: %w", path, wirekit.ErrNilInput)
		}
		v := want.New()
		if err := (jsonwire.Codec{}).Unmarshal(data, v, a.jsonOptions()); err != nil {
			return nil, 0, "", fmt.Errorf("%s: %w", path, err)
		}
		return v, want, jsonwire.FormatName, nil
	}

	node, err := envelope.ParseNode(data)
	if err != nil {
		return nil, 0, "", fmt.Errorf("%s: %w", path, &wirekit.FormatError{Format: xmlwire.FormatName, Offset: -1, Err: err})
	}
	var (
		v any
		k envelope.Kind
	)
	if node.LocalName() == envelope.RootElement {
		env, err := envelope.Parse(data)
		if err != nil {
			return nil, 0, "", fmt.Errorf("%s: %w", path, err)
		}
		var ok bool
		if v, ok = envelope.Data(env); !ok {
			name, _ := env.ElementName()
			return nil, 0, "", fmt.Errorf("%s: %w: envelope carries <%s>", path, errUnknownKind, name)
		}
		k, _ = env.Kind()
	} else {
		var ok bool
		if k, ok = envelope.KindFromElement(node.LocalName()); !ok {
			return nil, 0, "", fmt.Errorf("%s: %w: <%s>", path, errUnknownKind, node.LocalName())
		}
		v = k.New()
		if err := (xmlwire.Codec{}).Unmarshal(data, v, a.xmlOptions()); err != nil {
			return nil, 0, "", fmt.Errorf("%s: %w", path, err)
		}
	}
	if want != 0 && want != k {
		return nil, 0, "", fmt.Errorf("%s: document is %v, not %v", path, k, want)
	}
	return v, k, xmlwire.FormatName, nil
}

// encode serializes v in the named format using the configured options.
func (a *app) encode(v any, format string) (wirekit.Document, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case xmlwire.FormatName:
		data, err = xmlwire.Codec{}.Marshal(v, a.xmlOptions())
	case jsonwire.FormatName:
		data, err = jsonwire.Codec{}.Marshal(v, a.jsonOptions())
	default:
		return wirekit.Document{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return wirekit.Document{}, err
	}
	return wirekit.NewDocument(format, data), nil
}

// emit writes doc to path, or to w when path is empty.
func emit(w io.Writer, path string, doc wirekit.Document) error {
	if path == "" {
		if _, err := w.Write(doc.Bytes()); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	return os.WriteFile(path, doc.Bytes(), 0o644)
}
