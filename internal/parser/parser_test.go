package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terr "github.com/conneroisu/tdom/internal/errors"
)

func mustParse(t *testing.T, chunks []string) *Tree {
	t.Helper()
	tree, err := Parse(chunks, false)
	require.NoError(t, err)
	return tree
}

func TestParseStaticMarkup(t *testing.T) {
	tree := mustParse(t, []string{"<p>hi</p>"})
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, 0, tree.Slots)

	el, ok := tree.Roots[0].(*Element)
	require.True(t, ok)
	assert.Equal(t, "p", el.Tag)
	assert.False(t, el.Component())
	require.Len(t, el.Children, 1)
	assert.Equal(t, &Text{Data: "hi"}, el.Children[0])
}

func TestParseContentSlot(t *testing.T) {
	tree := mustParse(t, []string{"<p>", "</p>"})
	assert.Equal(t, 1, tree.Slots)

	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 1)
	assert.Equal(t, &Slot{Index: 0}, el.Children[0])
}

func TestParseTopLevelSlot(t *testing.T) {
	tree := mustParse(t, []string{"", ""})
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, &Slot{Index: 0}, tree.Roots[0])
}

func TestParseTrimsOuterWhitespace(t *testing.T) {
	tree := mustParse(t, []string{"\n  <p>hi</p>\n  "})
	require.Len(t, tree.Roots, 1)
	_, ok := tree.Roots[0].(*Element)
	assert.True(t, ok)
}

func TestParsePreservesInteriorWhitespace(t *testing.T) {
	tree := mustParse(t, []string{"<div>\n  <p>x</p>\n</div>"})
	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 3)
	assert.Equal(t, &Text{Data: "\n  "}, el.Children[0])
	assert.Equal(t, "p", el.Children[1].(*Element).Tag)
	assert.Equal(t, &Text{Data: "\n"}, el.Children[2])
}

func TestParseWhitespaceBetweenSlots(t *testing.T) {
	tree := mustParse(t, []string{"<p>", " ", "</p>"})
	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 3)
	assert.Equal(t, &Slot{Index: 0}, el.Children[0])
	assert.Equal(t, &Text{Data: " "}, el.Children[1])
	assert.Equal(t, &Slot{Index: 1}, el.Children[2])
}

func TestParseLoneAngleBracketIsText(t *testing.T) {
	tree := mustParse(t, []string{"<p>1 < 2</p>"})
	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 1)
	assert.Equal(t, &Text{Data: "1 < 2"}, el.Children[0])
}

func TestParseTagCaseNormalization(t *testing.T) {
	tree := mustParse(t, []string{"<DIV>x</DIV>"})
	assert.Equal(t, "div", tree.Roots[0].(*Element).Tag)

	xmlTree, err := Parse([]string{"<linearGradient></linearGradient>"}, true)
	require.NoError(t, err)
	assert.Equal(t, "linearGradient", xmlTree.Roots[0].(*Element).Tag)
}

func TestParseAttributes(t *testing.T) {
	t.Run("boolean attribute", func(t *testing.T) {
		tree := mustParse(t, []string{"<input disabled>"})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 1)
		assert.Equal(t, Attr{Name: "disabled", Bool: true}, el.Attrs[0])
	})

	t.Run("quoted literal value", func(t *testing.T) {
		tree := mustParse(t, []string{`<a href="/x">go</a>`})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 1)
		assert.Equal(t, Attr{Name: "href", Parts: []Part{{Lit: "/x", Slot: -1}}}, el.Attrs[0])
	})

	t.Run("single-quoted value", func(t *testing.T) {
		tree := mustParse(t, []string{`<a href='/y'>go</a>`})
		el := tree.Roots[0].(*Element)
		assert.Equal(t, []Part{{Lit: "/y", Slot: -1}}, el.Attrs[0].Parts)
	})

	t.Run("empty quoted value", func(t *testing.T) {
		tree := mustParse(t, []string{`<a href="">go</a>`})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 1)
		assert.Empty(t, el.Attrs[0].Parts)
		assert.False(t, el.Attrs[0].Bool)
	})

	t.Run("unquoted literal value", func(t *testing.T) {
		tree := mustParse(t, []string{"<a href=/x>go</a>"})
		el := tree.Roots[0].(*Element)
		assert.Equal(t, []Part{{Lit: "/x", Slot: -1}}, el.Attrs[0].Parts)
	})

	t.Run("value slot inside quotes", func(t *testing.T) {
		tree := mustParse(t, []string{`<a href="`, `">go</a>`})
		el := tree.Roots[0].(*Element)
		assert.Equal(t, []Part{{Slot: 0}}, el.Attrs[0].Parts)
	})

	t.Run("mixed literal and slot parts", func(t *testing.T) {
		tree := mustParse(t, []string{`<a href="/u/`, `/p">go</a>`})
		el := tree.Roots[0].(*Element)
		assert.Equal(t, []Part{
			{Lit: "/u/", Slot: -1},
			{Slot: 0},
			{Lit: "/p", Slot: -1},
		}, el.Attrs[0].Parts)
	})

	t.Run("unquoted value slot", func(t *testing.T) {
		tree := mustParse(t, []string{"<a href=", ">go</a>"})
		el := tree.Roots[0].(*Element)
		assert.Equal(t, []Part{{Slot: 0}}, el.Attrs[0].Parts)
	})

	t.Run("attribute spread", func(t *testing.T) {
		tree := mustParse(t, []string{"<a ", ">go</a>"})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 1)
		assert.True(t, el.Attrs[0].Spread)
		assert.Equal(t, 0, el.Attrs[0].SpreadSlot)
	})

	t.Run("spread between literal attributes", func(t *testing.T) {
		tree := mustParse(t, []string{`<a id="x" `, ` class="y">go</a>`})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 3)
		assert.Equal(t, "id", el.Attrs[0].Name)
		assert.True(t, el.Attrs[1].Spread)
		assert.Equal(t, "class", el.Attrs[2].Name)
	})
}

func TestParseVoidElements(t *testing.T) {
	tree := mustParse(t, []string{"<div><br><hr></div>"})
	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 2)
	assert.Equal(t, "br", el.Children[0].(*Element).Tag)
	assert.Equal(t, "hr", el.Children[1].(*Element).Tag)
}

func TestParseSelfClosing(t *testing.T) {
	tree := mustParse(t, []string{"<div><span/>x</div>"})
	el := tree.Roots[0].(*Element)
	require.Len(t, el.Children, 2)
	assert.Equal(t, "span", el.Children[0].(*Element).Tag)
	assert.Equal(t, &Text{Data: "x"}, el.Children[1])
}

func TestParseAutoClose(t *testing.T) {
	tree := mustParse(t, []string{"<div><p>x</></>"})
	div := tree.Roots[0].(*Element)
	require.Len(t, div.Children, 1)
	p := div.Children[0].(*Element)
	assert.Equal(t, "p", p.Tag)
}

func TestParseRawText(t *testing.T) {
	t.Run("body is opaque", func(t *testing.T) {
		tree := mustParse(t, []string{"<script>if (a<b) { f() }</script>"})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Children, 1)
		assert.Equal(t, &Text{Data: "if (a<b) { f() }"}, el.Children[0])
	})

	t.Run("slots are recorded inside the body", func(t *testing.T) {
		tree := mustParse(t, []string{"<script>var x = ", ";</script>"})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Children, 3)
		assert.Equal(t, &Text{Data: "var x = "}, el.Children[0])
		assert.Equal(t, &Slot{Index: 0}, el.Children[1])
		assert.Equal(t, &Text{Data: ";"}, el.Children[2])
	})

	t.Run("closing tag is case-insensitive", func(t *testing.T) {
		tree := mustParse(t, []string{"<script>x</SCRIPT>"})
		assert.Equal(t, "script", tree.Roots[0].(*Element).Tag)
	})

	t.Run("xml mode disables raw text", func(t *testing.T) {
		tree, err := Parse([]string{"<title><b>x</b></title>"}, true)
		require.NoError(t, err)
		title := tree.Roots[0].(*Element)
		require.Len(t, title.Children, 1)
		assert.Equal(t, "b", title.Children[0].(*Element).Tag)
	})
}

func TestParseComment(t *testing.T) {
	tree := mustParse(t, []string{"<!-- a note --><p>x</p>"})
	require.Len(t, tree.Roots, 2)
	assert.Equal(t, &Comment{Data: " a note "}, tree.Roots[0])
}

func TestParseDoctype(t *testing.T) {
	tree := mustParse(t, []string{"<!DOCTYPE html><html></html>"})
	require.Len(t, tree.Roots, 2)
	assert.Equal(t, &Doctype{Name: "html"}, tree.Roots[0])

	tree = mustParse(t, []string{"<!-- c --><!doctype html><p>x</p>"})
	assert.Equal(t, &Doctype{Name: "html"}, tree.Roots[1])
}

func TestParseComponents(t *testing.T) {
	t.Run("open and component close", func(t *testing.T) {
		tree := mustParse(t, []string{"<", ">hi</", ">"})
		require.Len(t, tree.Roots, 1)
		el := tree.Roots[0].(*Element)
		assert.True(t, el.Component())
		assert.Equal(t, 0, el.TagSlot)
		assert.Equal(t, 1, el.CloseSlot)
		require.Len(t, el.Children, 1)
		assert.Equal(t, &Text{Data: "hi"}, el.Children[0])
	})

	t.Run("self-closing", func(t *testing.T) {
		tree := mustParse(t, []string{"<", "/>"})
		el := tree.Roots[0].(*Element)
		assert.True(t, el.Component())
		assert.Empty(t, el.Children)
	})

	t.Run("auto-close sentinel", func(t *testing.T) {
		tree := mustParse(t, []string{"<", ">hi<//>"})
		el := tree.Roots[0].(*Element)
		assert.True(t, el.Component())
		assert.Equal(t, -1, el.CloseSlot)
	})

	t.Run("with attributes and children", func(t *testing.T) {
		tree := mustParse(t, []string{`<`, ` title="t" wide><p>x</p><//>`})
		el := tree.Roots[0].(*Element)
		require.Len(t, el.Attrs, 2)
		assert.Equal(t, "title", el.Attrs[0].Name)
		assert.True(t, el.Attrs[1].Bool)
		require.Len(t, el.Children, 1)
	})
}

func TestParseSlotCount(t *testing.T) {
	tree := mustParse(t, []string{"<ul>", "", "</ul>"})
	assert.Equal(t, 2, tree.Slots)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		code   string
	}{
		{"tag name split", []string{"<di", "v>x</div>"}, "tag-name-split"},
		{"closing tag name split", []string{"<div>x</di", "v>"}, "tag-name-split"},
		{"attr name split", []string{"<a cla", `="x">y</a>`}, "attr-name-split"},
		{"dynamic attr name", []string{"<a ", `="x">y</a>`}, "dynamic-attr-name"},
		{"missing value", []string{"<a href=>y</a>"}, "missing-value"},
		{"unterminated quote", []string{`<a href="x`}, "unterminated-quote"},
		{"stray slash", []string{"<a / >y</a>"}, "stray-slash"},
		{"unterminated tag", []string{"<a href"}, "unterminated-tag"},
		{"unclosed element", []string{"<div><p>x</p>"}, "unclosed-tag"},
		{"unmatched closing", []string{"</div>"}, "unmatched-closing"},
		{"close mismatch", []string{"<div>x</span>"}, "close-mismatch"},
		{"component close for literal", []string{"<div>x</", ">"}, "close-mismatch"},
		{"literal close for component", []string{"<", ">x</div>"}, "close-mismatch"},
		{"slot in comment", []string{"<!-- ", " -->"}, "comment-slot"},
		{"unterminated comment", []string{"<!-- x"}, "unterminated-comment"},
		{"doctype after markup", []string{"<p>x</p><!DOCTYPE html>"}, "doctype-position"},
		{"empty doctype", []string{"<!><p>x</p>"}, "bad-doctype"},
		{"unclosed raw text", []string{"<script>var x = 1;"}, "unclosed-raw-text"},
		{"malformed raw close", []string{"<script>x</script"}, "bad-closing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.chunks, false)
			require.Error(t, err)
			assert.True(t, terr.IsSyntax(err), "expected a syntax error, got %v", err)

			var e *terr.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]string{"<div>x", "</span>"}, false)
	require.Error(t, err)

	var e *terr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 1, e.Chunk)
	assert.GreaterOrEqual(t, e.Offset, 0)
}

func TestParseEmptyInput(t *testing.T) {
	tree, err := Parse(nil, false)
	require.NoError(t, err)
	assert.Empty(t, tree.Roots)

	tree, err = Parse([]string{"   "}, false)
	require.NoError(t, err)
	assert.Empty(t, tree.Roots)
}
