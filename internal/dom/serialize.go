package dom

import (
	"io"
	"strings"
)

// rawContext tracks the enclosing raw-text element during serialization
// so text children pick the right escaper.
type rawContext int

const (
	rawNone rawContext = iota
	rawScript
	rawStyle
)

// Render writes the serialized markup of n to w. Serialization is a pure
// tree walk; nothing is cached.
func Render(w io.Writer, n Node) error {
	_, err := io.WriteString(w, n.String())
	return err
}

// String serializes the text node, escaping the payload unless it is
// trusted markup. Inside <script> and <style> bodies the context-specific
// escaper applies instead of general entity escaping.
func (t *Text) String() string {
	var b strings.Builder
	t.render(&b, rawNone)
	return b.String()
}

func (t *Text) render(b *strings.Builder, raw rawContext) {
	if t.Trusted {
		b.WriteString(t.Data)
		return
	}
	switch raw {
	case rawScript:
		b.WriteString(EscapeScript(t.Data))
	case rawStyle:
		b.WriteString(EscapeStyle(t.Data))
	default:
		b.WriteString(EscapeText(t.Data))
	}
}

// String serializes the comment with its payload verbatim.
func (c *Comment) String() string {
	var b strings.Builder
	c.render(&b, rawNone)
	return b.String()
}

func (c *Comment) render(b *strings.Builder, _ rawContext) {
	b.WriteString("<!--")
	b.WriteString(c.Data)
	b.WriteString("-->")
}

// String serializes the doctype declaration.
func (d *DocumentType) String() string {
	var b strings.Builder
	d.render(&b, rawNone)
	return b.String()
}

func (d *DocumentType) render(b *strings.Builder, _ rawContext) {
	b.WriteString("<!DOCTYPE ")
	b.WriteString(d.Name)
	b.WriteString(">")
}

// String serializes the element, its attributes in insertion order and
// its children. Void elements never emit a closing tag.
func (e *Element) String() string {
	var b strings.Builder
	e.render(&b, rawNone)
	return b.String()
}

func (e *Element) render(b *strings.Builder, _ rawContext) {
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		if a.Bool {
			if e.XML {
				b.WriteString(`=""`)
			}
			continue
		}
		b.WriteString(`="`)
		if a.Trusted {
			b.WriteString(a.Value)
		} else {
			b.WriteString(EscapeText(a.Value))
		}
		b.WriteByte('"')
	}

	if len(e.Children) > 0 {
		b.WriteByte('>')
		raw := rawNone
		switch e.Tag {
		case "script":
			raw = rawScript
		case "style":
			raw = rawStyle
		}
		for _, child := range e.Children {
			child.render(b, raw)
		}
		b.WriteString("</")
		b.WriteString(e.Tag)
		b.WriteByte('>')
		return
	}

	if e.XML {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	if !IsVoid(e.Tag) {
		b.WriteString("</")
		b.WriteString(e.Tag)
		b.WriteByte('>')
	}
}

// String serializes the fragment as the concatenation of its children.
func (f *Fragment) String() string {
	var b strings.Builder
	f.render(&b, rawNone)
	return b.String()
}

func (f *Fragment) render(b *strings.Builder, raw rawContext) {
	for _, child := range f.Children {
		child.render(b, raw)
	}
}
