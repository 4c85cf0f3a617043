// Package parser compiles the static markup skeleton of a template into
// an intermediate tree.
//
// The input is the ordered sequence of static text chunks produced by
// the template mechanism: n+1 chunks surrounding n interpolations. The
// parser scans the chunks with a small tag-soup state machine (tags,
// attributes, quoting, comments, doctype, void and raw-text elements,
// component-invocation syntax) and classifies every chunk boundary by
// the syntactic position it falls into: tag name, attribute name,
// attribute value or child content. It is deliberately not a WHATWG
// HTML5 tokenizer; there is no error recovery and no entity decoding.
//
// Parsing depends only on the chunk sequence, never on interpolation
// values, so a parsed Tree can be cached and shared across resolutions.
package parser

import (
	"strings"

	"github.com/conneroisu/tdom/internal/dom"
	terr "github.com/conneroisu/tdom/internal/errors"
)

// Parse compiles static chunks into an intermediate tree. xml selects
// XML/SVG mode: tag case is preserved and the void/raw-text element
// rules are disabled.
//
// Only the template's outermost leading and trailing whitespace is
// trimmed; every interior text run, whitespace-only ones included, is
// kept verbatim.
//
// All failures are syntax errors: unbalanced or mismatched tags,
// unterminated quotes or comments, and interpolations in illegal
// positions (splitting a tag or attribute name, inside a comment or
// doctype).
func Parse(chunks []string, xml bool) (*Tree, error) {
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	trimmed := make([]string, len(chunks))
	copy(trimmed, chunks)
	trimmed[0] = strings.TrimLeft(trimmed[0], " \t\r\n")
	trimmed[len(trimmed)-1] = strings.TrimRight(trimmed[len(trimmed)-1], " \t\r\n")

	p := &parser{chunks: trimmed, xml: xml}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &Tree{Roots: p.roots, Slots: len(chunks) - 1, XML: xml}, nil
}

type parser struct {
	chunks []string
	xml    bool
	ci     int // current chunk
	pos    int // byte offset within current chunk
	stack  []*Element
	roots  []Node
	// sawMarkup is set once any element, text or slot has been
	// emitted; a doctype is only legal before that (comments are
	// allowed to precede it).
	sawMarkup bool
}

func (p *parser) cur() string     { return p.chunks[p.ci] }
func (p *parser) lastChunk() bool { return p.ci == len(p.chunks)-1 }

// atBoundary reports whether the cursor sits at an interpolation site:
// the end of a chunk that is not the last one.
func (p *parser) atBoundary() bool {
	return p.pos >= len(p.cur()) && !p.lastChunk()
}

// takeSlot consumes the interpolation site at the cursor and returns its
// index.
func (p *parser) takeSlot() int {
	slot := p.ci
	p.ci++
	p.pos = 0
	return slot
}

func (p *parser) syntaxf(code, format string, args ...interface{}) error {
	return terr.Syntaxf(code, format, args...).WithPosition(p.ci, p.pos)
}

func (p *parser) append(n Node) {
	switch t := n.(type) {
	case *Comment, *Doctype:
	case *Text:
		// Whitespace-only text does not shift the doctype position.
		if strings.TrimSpace(t.Data) != "" {
			p.sawMarkup = true
		}
	default:
		p.sawMarkup = true
	}
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.Children = append(top.Children, n)
		return
	}
	p.roots = append(p.roots, n)
}

func (p *parser) top() *Element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == ':' || c == '.' || c == '_' || c == '-'
}

// readName consumes a tag name at the cursor.
func (p *parser) readName() string {
	start := p.pos
	for p.pos < len(p.cur()) && isNameChar(p.cur()[p.pos]) {
		p.pos++
	}
	return p.cur()[start:p.pos]
}

// readAttrName consumes an attribute name at the cursor.
func (p *parser) readAttrName() string {
	start := p.pos
	for p.pos < len(p.cur()) {
		c := p.cur()[p.pos]
		if isSpace(c) || c == '=' || c == '/' || c == '>' || c == '<' || c == '"' || c == '\'' {
			break
		}
		p.pos++
	}
	return p.cur()[start:p.pos]
}

// skipSpace advances over whitespace within the current chunk.
func (p *parser) skipSpace() {
	for p.pos < len(p.cur()) && isSpace(p.cur()[p.pos]) {
		p.pos++
	}
}

// run is the content-position loop: literal text, child slots and tag
// dispatch.
func (p *parser) run() error {
	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		p.append(&Text{Data: text.String()})
		text.Reset()
	}

	for {
		if p.pos >= len(p.cur()) {
			flush()
			if p.lastChunk() {
				break
			}
			p.append(&Slot{Index: p.takeSlot()})
			continue
		}

		c := p.cur()[p.pos]
		if c != '<' {
			text.WriteByte(c)
			p.pos++
			continue
		}

		rest := p.cur()[p.pos+1:]
		switch {
		case rest == "" && !p.lastChunk():
			// <{expr} opens a component invocation.
			flush()
			p.pos++
			slot := p.takeSlot()
			if err := p.parseElement("", slot); err != nil {
				return err
			}
		case strings.HasPrefix(rest, "!--"):
			flush()
			if err := p.parseComment(); err != nil {
				return err
			}
		case strings.HasPrefix(rest, "!"):
			flush()
			if err := p.parseDoctype(); err != nil {
				return err
			}
		case strings.HasPrefix(rest, "/"):
			flush()
			if err := p.parseClosing(); err != nil {
				return err
			}
		case rest != "" && isNameStart(rest[0]):
			flush()
			p.pos++
			name := p.readName()
			if p.atBoundary() {
				return p.syntaxf("tag-name-split", "interpolation cannot split the tag name %q", name)
			}
			if err := p.parseElement(name, -1); err != nil {
				return err
			}
		default:
			// Tag soup: a lone '<' is literal text.
			text.WriteByte(c)
			p.pos++
		}
	}

	if top := p.top(); top != nil {
		if top.Component() {
			return p.syntaxf("unclosed-tag", "unclosed component tag")
		}
		return p.syntaxf("unclosed-tag", "unclosed <%s> element", top.Tag)
	}
	return nil
}

// parseElement parses attributes and the tag close for an element whose
// name (or tag slot) has already been consumed.
func (p *parser) parseElement(name string, tagSlot int) error {
	tag := name
	if !p.xml {
		tag = strings.ToLower(name)
	}
	el := &Element{Tag: tag, TagSlot: tagSlot, CloseSlot: -1}
	selfClosed, err := p.parseAttrs(el)
	if err != nil {
		return err
	}
	p.append(el)

	if tagSlot >= 0 {
		if !selfClosed {
			p.stack = append(p.stack, el)
		}
		return nil
	}
	if !p.xml && dom.IsVoid(tag) {
		// Void elements take no children whether self-closed or not.
		return nil
	}
	if selfClosed {
		return nil
	}
	if !p.xml && dom.IsRawText(tag) {
		return p.parseRawText(el)
	}
	p.stack = append(p.stack, el)
	return nil
}

// parseAttrs consumes the attribute area up to '>' or '/>'. It reports
// whether the tag was self-closed.
func (p *parser) parseAttrs(el *Element) (bool, error) {
	for {
		p.skipSpace()

		if p.pos >= len(p.cur()) {
			if p.lastChunk() {
				return false, p.syntaxf("unterminated-tag", "unterminated tag")
			}
			// A standalone interpolation in attribute-name position is
			// an attribute spread.
			slot := p.takeSlot()
			if p.pos < len(p.cur()) && p.cur()[p.pos] == '=' {
				return false, p.syntaxf("dynamic-attr-name", "dynamic attribute names are not supported, use a spread")
			}
			el.Attrs = append(el.Attrs, Attr{Spread: true, SpreadSlot: slot})
			continue
		}

		switch c := p.cur()[p.pos]; {
		case c == '>':
			p.pos++
			return false, nil
		case c == '/':
			if p.pos+1 < len(p.cur()) && p.cur()[p.pos+1] == '>' {
				p.pos += 2
				return true, nil
			}
			return false, p.syntaxf("stray-slash", "unexpected '/' inside tag")
		default:
			if err := p.parseAttr(el); err != nil {
				return false, err
			}
		}
	}
}

// parseAttr consumes one named or boolean attribute.
func (p *parser) parseAttr(el *Element) error {
	name := p.readAttrName()
	if name == "" {
		return p.syntaxf("bad-attr", "malformed attribute")
	}
	if p.atBoundary() {
		return p.syntaxf("attr-name-split", "interpolation cannot extend the attribute name %q", name)
	}

	p.skipSpace()
	if p.pos >= len(p.cur()) || p.cur()[p.pos] != '=' {
		// No value: a literal boolean attribute. A following boundary
		// belongs to the attribute loop (spread position).
		el.Attrs = append(el.Attrs, Attr{Name: name, Bool: true})
		return nil
	}
	p.pos++ // '='
	p.skipSpace()

	if p.pos >= len(p.cur()) && p.lastChunk() {
		return p.syntaxf("missing-value", "missing value for attribute %q", name)
	}

	var parts []Part
	var err error
	if p.pos < len(p.cur()) && (p.cur()[p.pos] == '"' || p.cur()[p.pos] == '\'') {
		quote := p.cur()[p.pos]
		p.pos++
		parts, err = p.readValueParts(quote)
	} else {
		parts, err = p.readValueParts(0)
		if err == nil && len(parts) == 0 {
			return p.syntaxf("missing-value", "missing value for attribute %q", name)
		}
	}
	if err != nil {
		return err
	}
	if parts == nil {
		parts = []Part{}
	}
	el.Attrs = append(el.Attrs, Attr{Name: name, Parts: parts})
	return nil
}

// readValueParts scans an attribute value into literal and slot parts.
// quote is the closing quote character, or 0 for an unquoted value, which
// ends at whitespace, '>' or a closing '/>'.
func (p *parser) readValueParts(quote byte) ([]Part, error) {
	var parts []Part
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			parts = append(parts, Part{Lit: lit.String(), Slot: -1})
			lit.Reset()
		}
	}

	for {
		if p.pos >= len(p.cur()) {
			if p.lastChunk() {
				if quote != 0 {
					return nil, p.syntaxf("unterminated-quote", "unterminated quoted attribute value")
				}
				break
			}
			flushLit()
			parts = append(parts, Part{Slot: p.takeSlot()})
			continue
		}

		c := p.cur()[p.pos]
		if quote != 0 {
			if c == quote {
				p.pos++
				break
			}
			lit.WriteByte(c)
			p.pos++
			continue
		}
		if isSpace(c) || c == '>' {
			break
		}
		if c == '/' && p.pos+1 < len(p.cur()) && p.cur()[p.pos+1] == '>' {
			break
		}
		lit.WriteByte(c)
		p.pos++
	}
	flushLit()
	return parts, nil
}

// parseRawText consumes the opaque body of a raw-text element up to its
// matching closing tag. Tags inside the body are not parsed;
// interpolations are still recorded as child slots.
func (p *parser) parseRawText(el *Element) error {
	closing := "</" + el.Tag
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			el.Children = append(el.Children, &Text{Data: text.String()})
			text.Reset()
		}
	}

	for {
		if p.pos >= len(p.cur()) {
			if p.lastChunk() {
				return p.syntaxf("unclosed-raw-text", "unclosed <%s> element", el.Tag)
			}
			flush()
			el.Children = append(el.Children, &Slot{Index: p.takeSlot()})
			p.sawMarkup = true
			continue
		}

		rest := p.cur()[p.pos:]
		if len(rest) >= len(closing) && strings.EqualFold(rest[:len(closing)], closing) {
			flush()
			p.pos += len(closing)
			p.skipSpace()
			if p.pos >= len(p.cur()) || p.cur()[p.pos] != '>' {
				return p.syntaxf("bad-closing", "malformed closing tag for <%s>", el.Tag)
			}
			p.pos++
			return nil
		}
		text.WriteByte(rest[0])
		p.pos++
	}
}

// parseComment consumes <!-- ... -->, preserving the payload verbatim.
func (p *parser) parseComment() error {
	p.pos += 4 // "<!--"
	var data strings.Builder
	for {
		if p.pos >= len(p.cur()) {
			if p.lastChunk() {
				return p.syntaxf("unterminated-comment", "unterminated comment")
			}
			return p.syntaxf("comment-slot", "interpolation inside a comment")
		}
		if strings.HasPrefix(p.cur()[p.pos:], "-->") {
			p.pos += 3
			p.append(&Comment{Data: data.String()})
			return nil
		}
		data.WriteByte(p.cur()[p.pos])
		p.pos++
	}
}

// parseDoctype consumes <!DOCTYPE name>, legal only before any other
// markup.
func (p *parser) parseDoctype() error {
	if p.sawMarkup || len(p.stack) > 0 {
		return p.syntaxf("doctype-position", "doctype is only recognized at the start of a template")
	}
	p.pos += 2 // "<!"
	start := p.pos
	for {
		if p.pos >= len(p.cur()) {
			if p.lastChunk() {
				return p.syntaxf("unterminated-doctype", "unterminated doctype declaration")
			}
			return p.syntaxf("doctype-slot", "interpolation inside a doctype declaration")
		}
		if p.cur()[p.pos] == '>' {
			break
		}
		p.pos++
	}
	decl := strings.TrimSpace(p.cur()[start:p.pos])
	p.pos++ // '>'

	name := decl
	if len(decl) >= 7 && strings.EqualFold(decl[:7], "doctype") {
		name = strings.TrimSpace(decl[7:])
	}
	if name == "" {
		return p.syntaxf("bad-doctype", "empty doctype declaration")
	}
	p.append(&Doctype{Name: name})
	return nil
}

// parseClosing consumes a closing tag: </name>, the auto-close
// sentinels </> and <//>, or the component form </{expr}>.
func (p *parser) parseClosing() error {
	p.pos += 2 // "</"

	if p.atBoundary() {
		slot := p.takeSlot()
		top := p.top()
		if top == nil {
			return p.syntaxf("unmatched-closing", "unmatched component closing tag")
		}
		if !top.Component() {
			return p.syntaxf("close-mismatch", "component closing tag for literal <%s>", top.Tag)
		}
		top.CloseSlot = slot
		p.skipSpace()
		if p.pos >= len(p.cur()) || p.cur()[p.pos] != '>' {
			return p.syntaxf("bad-closing", "malformed component closing tag")
		}
		p.pos++
		p.pop()
		return nil
	}

	name := p.readName()
	if name == "" && p.pos < len(p.cur()) && p.cur()[p.pos] == '/' {
		name = "/"
		p.pos++
	}
	if p.atBoundary() {
		return p.syntaxf("tag-name-split", "interpolation cannot split a closing tag name")
	}
	p.skipSpace()
	if p.pos >= len(p.cur()) || p.cur()[p.pos] != '>' {
		return p.syntaxf("bad-closing", "malformed closing tag")
	}
	p.pos++

	top := p.top()
	if top == nil {
		if name == "" || name == "/" {
			return p.syntaxf("unmatched-closing", "unmatched closing tag")
		}
		return p.syntaxf("unmatched-closing", "unmatched closing tag </%s>", name)
	}

	switch name {
	case "", "/":
		// Auto-close sentinel: closes whatever is open.
	default:
		if top.Component() {
			return p.syntaxf("close-mismatch", "closing tag </%s> for a component invocation", name)
		}
		match := name
		if !p.xml {
			match = strings.ToLower(name)
		}
		if match != top.Tag {
			return p.syntaxf("close-mismatch", "unexpected closing tag </%s>, open element is <%s>", name, top.Tag)
		}
	}
	p.pop()
	return nil
}
