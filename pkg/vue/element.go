package vue

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/vuegraph/vuegraph/pkg/errors"
)

// xsiNamespace is the XML Schema instance namespace used by VUE for the
// element type discriminator (xsi:type).
const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Element is one node of the parsed VUE document tree. Children preserve
// document order; attributes keep their namespace so the xsi:type
// discriminator survives parsing.
type Element struct {
	Tag      string
	Attrs    []xml.Attr
	Children []*Element
	raw      string // accumulated character data
}

// UnmarshalXML builds the element tree recursively, preserving child order.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.Tag = start.Name.Local
	e.Attrs = start.Attr

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			e.raw += string(t)
		case xml.EndElement:
			return nil
		}
	}
}

// Text returns the element's character data with surrounding whitespace removed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.raw)
}

// Attr returns the value of the named (non-namespaced) attribute, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return true
		}
	}
	return false
}

// IntAttr parses the named attribute as an integer.
// A missing or non-integer value is a document error.
func (e *Element) IntAttr(name string) (int, error) {
	v := e.Attr(name)
	if v == "" {
		return 0, errors.New(errors.ErrCodeInvalidDocument, "<%s>: missing %s attribute", e.Tag, name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidDocument, "<%s>: %s attribute %q is not an integer", e.Tag, name, v)
	}
	return n, nil
}

// TypeAttr returns the xsi:type discriminator, or "" if absent.
// Both resolved-namespace and prefix forms are accepted, since the decoder
// only resolves the prefix when the document declares it.
func (e *Element) TypeAttr() string {
	for _, a := range e.Attrs {
		if a.Name.Local == "type" && (a.Name.Space == xsiNamespace || a.Name.Space == "xsi") {
			return a.Value
		}
	}
	return ""
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag, in document order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindText returns the text content of the first direct child with the given
// tag, or "" if no such child exists.
func (e *Element) FindText(tag string) string {
	if c := e.Find(tag); c != nil {
		return c.Text()
	}
	return ""
}
