// Package gomponents bridges rendered document trees into
// maragu.dev/gomponents nodes, so templates can be composed with
// handwritten gomponents views.
package gomponents

import (
	g "maragu.dev/gomponents"

	"github.com/conneroisu/tdom"
)

// FromTemplate resolves a template in HTML mode and converts the result.
func FromTemplate(t tdom.Template, opts ...tdom.Option) (g.Node, error) {
	node, err := tdom.Html(t, opts...)
	if err != nil {
		return nil, err
	}
	return FromNode(node), nil
}

// FromNode converts a document tree into an equivalent gomponents node.
// Trusted text maps to Raw, untrusted to Text; fragments become groups.
func FromNode(n tdom.Node) g.Node {
	switch v := n.(type) {
	case *tdom.Text:
		if v.Trusted {
			return g.Raw(v.Data)
		}
		return g.Text(v.Data)
	case *tdom.Comment:
		return g.Raw("<!--" + v.Data + "-->")
	case *tdom.DocumentType:
		return g.Raw("<!DOCTYPE " + v.Name + ">")
	case *tdom.Fragment:
		return g.Group(fromChildren(v.Children))
	case *tdom.Element:
		args := make([]g.Node, 0, len(v.Attrs)+len(v.Children))
		for _, a := range v.Attrs {
			if a.Bool {
				args = append(args, g.Attr(a.Name))
				continue
			}
			args = append(args, g.Attr(a.Name, a.Value))
		}
		args = append(args, fromChildren(v.Children)...)
		return g.El(v.Tag, args...)
	default:
		return nil
	}
}

func fromChildren(children []tdom.Node) []g.Node {
	out := make([]g.Node, 0, len(children))
	for _, child := range children {
		out = append(out, FromNode(child))
	}
	return out
}
