package tdom

import (
	"io"

	"github.com/conneroisu/tdom/internal/dom"
)

// Node tree vocabulary, re-exported from the dom package.
type (
	Node         = dom.Node
	NodeKind     = dom.NodeKind
	Element      = dom.Element
	Text         = dom.Text
	Comment      = dom.Comment
	DocumentType = dom.DocumentType
	Fragment     = dom.Fragment
	Attr         = dom.Attr

	// Safe marks a string as pre-escaped markup that serialization
	// must not escape again.
	Safe = dom.Safe
	// Markup is the capability a value implements to vouch for its own
	// markup safety.
	Markup = dom.Markup
)

const (
	KindElement      = dom.KindElement
	KindText         = dom.KindText
	KindComment      = dom.KindComment
	KindDocumentType = dom.KindDocumentType
	KindFragment     = dom.KindFragment
)

// Node constructors, re-exported from the dom package.
var (
	NewText         = dom.NewText
	NewTrustedText  = dom.NewTrustedText
	NewComment      = dom.NewComment
	NewDocumentType = dom.NewDocumentType
	NewElement      = dom.NewElement
	NewFragment     = dom.NewFragment
)

// RenderTo serializes a node tree to the writer.
func RenderTo(w io.Writer, n Node) error {
	return dom.Render(w, n)
}

// EscapeText escapes markup-significant characters for text and
// attribute context.
func EscapeText(s string) string {
	return dom.EscapeText(s)
}
