package envelope

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
)

const xmlnsPrefix = "xmlns"

// Node is an opaque markup sub-tree: the element name and attributes as
// parsed, and the raw bytes between its start and end tags.
type Node struct {
	Name  xml.Name
	Attr  []xml.Attr
	Inner []byte

	// prefix declarations in scope from enclosing elements
	inherited []xml.Attr
}

var errNoElement = errors.New("envelope: no element in document")

// ParseNode parses the first element of data into a standalone Node.
func ParseNode(data []byte) (Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Node{}, errNoElement
		}
		if err != nil {
			return Node{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeNode(dec, start, nil)
		}
	}
}

func decodeNode(dec *xml.Decoder, start xml.StartElement, scope []xml.Attr) (Node, error) {
	var raw struct {
		Inner []byte `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return Node{}, err
	}
	return Node{
		Name:      start.Name,
		Attr:      slices.Clone(start.Attr),
		Inner:     bytes.Clone(raw.Inner),
		inherited: slices.Clone(scope),
	}, nil
}

// declare returns scope extended with the xmlns:prefix declarations of attrs.
// A later declaration of a prefix replaces an earlier one.
func declare(scope, attrs []xml.Attr) []xml.Attr {
	out := slices.Clone(scope)
	for _, a := range attrs {
		if a.Name.Space != xmlnsPrefix {
			continue
		}
		out = slices.DeleteFunc(out, func(d xml.Attr) bool { return d.Name.Local == a.Name.Local })
		out = append(out, a)
	}
	return out
}

// LocalName returns the element's local tag name.
func (n Node) LocalName() string { return n.Name.Local }

// OuterXML renders the node as a standalone element. Namespace prefixes
// declared on the node or its ancestors are preserved, ancestor ones by
// re-declaring them here. An inherited default namespace is re-declared as
// the default namespace.
func (n Node) OuterXML() string {
	var b strings.Builder
	name := n.qualify(n.Name)
	b.WriteByte('<')
	b.WriteString(name)
	if n.Name.Space != "" && n.prefixFor(n.Name.Space) == "" && !n.declaresDefault(n.Name.Space) {
		writeAttr(&b, xmlnsPrefix, n.Name.Space)
	}
	for _, d := range n.ancestorPrefixes() {
		writeAttr(&b, xmlnsPrefix+":"+d.Name.Local, d.Value)
	}
	for _, a := range n.Attr {
		writeAttr(&b, n.qualify(a.Name), a.Value)
	}
	if len(n.Inner) == 0 {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteByte('>')
	b.Write(n.Inner)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
	return b.String()
}

func (n Node) qualify(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == xmlnsPrefix:
		return xmlnsPrefix + ":" + name.Local
	case name.Space == "http://www.w3.org/XML/1998/namespace":
		return "xml:" + name.Local
	}
	if p := n.prefixFor(name.Space); p != "" {
		return p + ":" + name.Local
	}
	// unbound attribute namespaces fall back to the local name; element
	// namespaces are declared as default by OuterXML
	return name.Local
}

// prefixFor finds a prefix bound to url by an xmlns:prefix attribute of the
// node or, failing that, of an ancestor.
func (n Node) prefixFor(url string) string {
	for _, a := range n.Attr {
		if a.Name.Space == xmlnsPrefix && a.Value == url {
			return a.Name.Local
		}
	}
	for _, d := range n.ancestorPrefixes() {
		if d.Value == url {
			return d.Name.Local
		}
	}
	return ""
}

// ancestorPrefixes returns the inherited declarations the node does not
// redeclare itself.
func (n Node) ancestorPrefixes() []xml.Attr {
	return slices.DeleteFunc(slices.Clone(n.inherited), func(d xml.Attr) bool {
		return slices.ContainsFunc(n.Attr, func(a xml.Attr) bool {
			return a.Name.Space == xmlnsPrefix && a.Name.Local == d.Name.Local
		})
	})
}

func (n Node) declaresDefault(url string) bool {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == xmlnsPrefix && a.Value == url {
			return true
		}
	}
	return false
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	_ = xml.EscapeText(b, []byte(value))
	b.WriteByte('"')
}
