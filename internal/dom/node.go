// Package dom defines the document tree vocabulary produced by template
// resolution: Text, Comment, DocumentType, Element and Fragment nodes,
// plus the serializer and escaping utilities that turn a tree back into
// markup.
//
// Trees are plain values with no parent pointers. Once a tree has been
// handed to a caller it is treated as immutable and is safe for
// concurrent reads; no API mutates a node in place after construction.
package dom

import "strings"

// NodeKind identifies the concrete node variant. The numeric values
// follow the W3C DOM node type constants.
type NodeKind int

const (
	KindElement      NodeKind = 1
	KindText         NodeKind = 3
	KindComment      NodeKind = 8
	KindDocumentType NodeKind = 10
	KindFragment     NodeKind = 11
)

// Node is a renderable document tree node supporting structural
// equality.
type Node interface {
	Kind() NodeKind
	Equal(Node) bool
	String() string
	render(b *strings.Builder, raw rawContext)
}

// Text is a leaf node wrapping a string payload. Trusted indicates the
// payload is pre-escaped markup that must be emitted verbatim.
type Text struct {
	Data    string
	Trusted bool
}

// NewText creates a text node whose payload is escaped at serialization.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// NewTrustedText creates a text node emitted verbatim at serialization.
func NewTrustedText(data string) *Text {
	return &Text{Data: data, Trusted: true}
}

// Kind implements Node.
func (t *Text) Kind() NodeKind { return KindText }

// Equal reports payload equality, including trust status.
func (t *Text) Equal(other Node) bool {
	o, ok := other.(*Text)
	return ok && t.Data == o.Data && t.Trusted == o.Trusted
}

// Comment is a leaf node serialized between <!-- and -->. The payload is
// never escaped; keeping "--" out of it is the caller's responsibility.
type Comment struct {
	Data string
}

// NewComment creates a comment node.
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

// Kind implements Node.
func (c *Comment) Kind() NodeKind { return KindComment }

// Equal reports payload equality.
func (c *Comment) Equal(other Node) bool {
	o, ok := other.(*Comment)
	return ok && c.Data == o.Data
}

// DocumentType is a leaf node serialized as <!DOCTYPE name>.
type DocumentType struct {
	Name string
}

// NewDocumentType creates a doctype node.
func NewDocumentType(name string) *DocumentType {
	return &DocumentType{Name: name}
}

// Kind implements Node.
func (d *DocumentType) Kind() NodeKind { return KindDocumentType }

// Equal reports name equality.
func (d *DocumentType) Equal(other Node) bool {
	o, ok := other.(*DocumentType)
	return ok && d.Name == o.Name
}

// Attr is a single element attribute. Bool attributes render as a bare
// name (or name="" in XML mode). Trusted values skip attribute-context
// escaping at serialization.
type Attr struct {
	Name    string
	Value   string
	Bool    bool
	Trusted bool
}

// Element is a named node with ordered attributes and children. Tag
// names are lowercase-normalized at construction. Void elements drop any
// children handed to them and never emit a closing tag.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
	// XML selects XML/SVG serialization: childless elements self-close
	// with " />" and boolean attributes render as name="".
	XML bool
}

// NewElement creates an element. Children passed for a void tag are
// silently dropped.
func NewElement(tag string, children ...Node) *Element {
	e := &Element{Tag: strings.ToLower(tag)}
	e.Append(children...)
	return e
}

// Kind implements Node.
func (e *Element) Kind() NodeKind { return KindElement }

// Append adds children, splicing fragments in place. Children of void
// elements are dropped.
func (e *Element) Append(children ...Node) {
	if IsVoid(e.Tag) && !e.XML {
		return
	}
	for _, child := range children {
		if f, ok := child.(*Fragment); ok {
			e.Children = append(e.Children, f.Children...)
			continue
		}
		e.Children = append(e.Children, child)
	}
}

// SetAttr sets a string-valued attribute. A repeated name overwrites the
// earlier value in place, keeping its original position (last writer
// wins).
func (e *Element) SetAttr(name, value string) {
	e.setAttr(Attr{Name: name, Value: value})
}

// SetTrustedAttr sets a string-valued attribute whose value skips
// escaping at serialization.
func (e *Element) SetTrustedAttr(name, value string) {
	e.setAttr(Attr{Name: name, Value: value, Trusted: true})
}

// SetBoolAttr sets a present-without-value attribute.
func (e *Element) SetBoolAttr(name string) {
	e.setAttr(Attr{Name: name, Bool: true})
}

// DeleteAttr removes an attribute entirely. Deleting an absent name is a
// no-op.
func (e *Element) DeleteAttr(name string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// Attr returns the attribute with the given name, if present.
func (e *Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

func (e *Element) setAttr(attr Attr) {
	for i, a := range e.Attrs {
		if a.Name == attr.Name {
			e.Attrs[i] = attr
			return
		}
	}
	e.Attrs = append(e.Attrs, attr)
}

// Equal reports structural equality: tag, attribute sequence and
// children.
func (e *Element) Equal(other Node) bool {
	o, ok := other.(*Element)
	if !ok || e.Tag != o.Tag || e.XML != o.XML {
		return false
	}
	if len(e.Attrs) != len(o.Attrs) || len(e.Children) != len(o.Children) {
		return false
	}
	for i, a := range e.Attrs {
		if a != o.Attrs[i] {
			return false
		}
	}
	for i, c := range e.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Fragment groups sibling nodes without a wrapping tag. Fragments are
// transparent: appending a fragment to an element or another fragment
// splices its children in place, so a fragment never survives as a
// distinct child in a final tree.
type Fragment struct {
	Children []Node
}

// NewFragment creates a fragment, splicing any fragments among the
// children.
func NewFragment(children ...Node) *Fragment {
	f := &Fragment{}
	f.Append(children...)
	return f
}

// Kind implements Node.
func (f *Fragment) Kind() NodeKind { return KindFragment }

// Append adds children, splicing nested fragments in place.
func (f *Fragment) Append(children ...Node) {
	for _, child := range children {
		if sub, ok := child.(*Fragment); ok {
			f.Children = append(f.Children, sub.Children...)
			continue
		}
		f.Children = append(f.Children, child)
	}
}

// Equal reports structural equality of the child sequences.
func (f *Fragment) Equal(other Node) bool {
	o, ok := other.(*Fragment)
	if !ok || len(f.Children) != len(o.Children) {
		return false
	}
	for i, c := range f.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
