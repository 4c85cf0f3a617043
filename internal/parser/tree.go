package parser

// Tree is the intermediate representation of one template shape: the
// static markup skeleton with interpolation-slot markers in place of
// dynamic values. A Tree holds no resolved values, only structure and
// slot indices, so it is safe to share read-only across resolutions with
// different interpolation values.
type Tree struct {
	Roots []Node
	// Slots is the number of interpolations the shape consumes. It
	// always equals len(chunks)-1 for the chunk sequence the tree was
	// parsed from.
	Slots int
	// XML records whether the shape was parsed in XML/SVG mode.
	XML bool
}

// Node is an intermediate tree node.
type Node interface {
	inode()
}

// Text is a literal text run.
type Text struct {
	Data string
}

func (*Text) inode() {}

// Comment is a literal comment; its payload is preserved verbatim and
// never reparsed.
type Comment struct {
	Data string
}

func (*Comment) inode() {}

// Doctype is a document type declaration; only recognized at the start
// of a template.
type Doctype struct {
	Name string
}

func (*Doctype) inode() {}

// Slot marks a child-position interpolation. Its resolved value may
// expand into zero, one or many sibling nodes.
type Slot struct {
	Index int
}

func (*Slot) inode() {}

// Element is an intermediate element. Exactly one of Tag or TagSlot is
// meaningful: TagSlot >= 0 marks a component invocation whose tag
// position is interpolated.
type Element struct {
	Tag     string
	TagSlot int
	// CloseSlot records the interpolation index consumed by a
	// </{expr}> closing form, -1 otherwise. The closing value itself
	// carries no structural information.
	CloseSlot int
	Attrs     []Attr
	Children  []Node
}

func (*Element) inode() {}

// Component reports whether the element is a component invocation.
func (e *Element) Component() bool {
	return e.TagSlot >= 0
}

// Attr is an intermediate attribute: a literal boolean attribute, a
// spread slot standing alone in attribute-name position, or a named
// attribute whose value is a sequence of literal and slot parts.
type Attr struct {
	Name       string
	Spread     bool
	SpreadSlot int
	Bool       bool
	Parts      []Part
}

// Part is one segment of an attribute value: either literal text or an
// interpolation slot. Slot is -1 for literal parts.
type Part struct {
	Lit  string
	Slot int
}
