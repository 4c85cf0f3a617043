// Package resolve combines a parsed template shape with its
// interpolation values to produce a final document tree.
//
// The resolver walks the intermediate tree depth-first and substitutes
// every interpolation slot according to its syntactic position: tag
// slots invoke components, attribute slots go through name-specific
// normalization (class flattening, style maps, data/aria expansion,
// boolean collapse), and content slots go through the uniform
// value-coercion rule. Resolution never escapes anything; escaping is
// deferred to serialization so a value's trust status survives the
// walk.
//
// Errors are never recovered into a partial tree: a failing slot aborts
// the whole resolve, and errors raised by components or by value
// formatting propagate to the caller unchanged.
package resolve

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/conneroisu/tdom/internal/dom"
	terr "github.com/conneroisu/tdom/internal/errors"
	"github.com/conneroisu/tdom/internal/logging"
	"github.com/conneroisu/tdom/internal/parser"
	"github.com/conneroisu/tdom/internal/shape"
)

// Options adjust one resolution.
type Options struct {
	// XML selects XML/SVG serialization semantics for produced
	// elements.
	XML bool
	// ClassDedup collapses repeated class names to their first
	// occurrence. The default preserves repeats in source order.
	ClassDedup bool
	// Shapes is the template-shape cache consulted for nested
	// templates. A nil cache parses every nested template fresh.
	Shapes *shape.Cache
	// Logger receives debug records; nil disables logging.
	Logger *logging.Logger
}

// Resolve substitutes values into the intermediate tree and returns the
// final node tree. A template with a single top-level node yields that
// node bare; multiple top-level nodes yield a fragment. ctx may be nil,
// in which case a fresh context is created for the render.
func Resolve(tree *parser.Tree, values []Interpolation, ctx *Context, opts Options) (dom.Node, error) {
	if len(values) != tree.Slots {
		return nil, terr.Typef("value-count", "template shape expects %d interpolations, got %d", tree.Slots, len(values))
	}
	if ctx == nil {
		ctx = NewContext()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	r := &resolver{values: values, ctx: ctx, opts: opts, log: opts.Logger.WithComponent("resolve")}
	nodes, err := r.nodes(tree.Roots)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return dom.NewFragment(nodes...), nil
}

type resolver struct {
	values []Interpolation
	ctx    *Context
	opts   Options
	log    *logging.Logger
}

func (r *resolver) nodes(ins []parser.Node) ([]dom.Node, error) {
	var out []dom.Node
	for _, in := range ins {
		ns, err := r.node(in)
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}

func (r *resolver) node(in parser.Node) ([]dom.Node, error) {
	switch n := in.(type) {
	case *parser.Text:
		return []dom.Node{dom.NewText(n.Data)}, nil
	case *parser.Comment:
		return []dom.Node{dom.NewComment(n.Data)}, nil
	case *parser.Doctype:
		return []dom.Node{dom.NewDocumentType(n.Name)}, nil
	case *parser.Slot:
		v, t, err := r.values[n.Index].eval()
		if err != nil {
			return nil, err
		}
		return r.coerce(v, t)
	case *parser.Element:
		children, err := r.nodes(n.Children)
		if err != nil {
			return nil, err
		}
		if n.Component() {
			return r.invokeComponent(n, children)
		}
		el := &dom.Element{Tag: n.Tag, XML: r.opts.XML}
		if err := r.applyAttrs(el, n.Attrs); err != nil {
			return nil, err
		}
		el.Append(children...)
		return []dom.Node{el}, nil
	default:
		return nil, terr.Internalf("unknown-node", "unknown intermediate node %T", in)
	}
}

// coerce classifies a resolved value into zero or more sibling nodes:
// the uniform rule shared by content slots and component return values.
func (r *resolver) coerce(v any, t trust) ([]dom.Node, error) {
	if t.unsafe {
		// Forced escaping strips any trust the value carries.
		if m, ok := v.(dom.Markup); ok {
			v = m.ToMarkup()
		}
		t = trust{}
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if !val {
			return nil, nil
		}
		return []dom.Node{dom.NewText("true")}, nil
	case *dom.Fragment:
		return val.Children, nil
	case dom.Node:
		return []dom.Node{val}, nil
	case Template:
		node, err := r.renderTemplate(val)
		if err != nil {
			return nil, err
		}
		if f, ok := node.(*dom.Fragment); ok {
			return f.Children, nil
		}
		return []dom.Node{node}, nil
	case dom.Markup:
		return []dom.Node{dom.NewTrustedText(val.ToMarkup())}, nil
	case string:
		if t.safe {
			return []dom.Node{dom.NewTrustedText(val)}, nil
		}
		return []dom.Node{dom.NewText(val)}, nil
	case []byte:
		return r.coerce(string(val), t)
	case func() any:
		return r.coerce(val(), t)
	case func() (any, error):
		inner, err := val()
		if err != nil {
			return nil, err
		}
		return r.coerce(inner, t)
	}

	if comp, ok := asComponent(v); ok {
		// A bare component in content position renders with no props
		// and no children.
		result, err := comp.Render(r.ctx, Props{}, nil)
		if err != nil {
			return nil, err
		}
		return r.coerce(result, t)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		// The sequence is fully drained here: the result tree must not
		// hold a live producer.
		var out []dom.Node
		for i := 0; i < rv.Len(); i++ {
			ns, err := r.coerce(rv.Index(i).Interface(), t)
			if err != nil {
				return nil, err
			}
			out = append(out, ns...)
		}
		return out, nil
	}

	text := Stringify(v)
	if t.safe {
		return []dom.Node{dom.NewTrustedText(text)}, nil
	}
	return []dom.Node{dom.NewText(text)}, nil
}

// renderTemplate recursively resolves a nested template against the
// shared shape cache, context and options.
func (r *resolver) renderTemplate(t Template) (dom.Node, error) {
	var tree *parser.Tree
	var err error
	if r.opts.Shapes != nil {
		tree, err = r.opts.Shapes.GetOrParse(t.Strings, r.opts.XML)
	} else {
		tree, err = parser.Parse(t.Strings, r.opts.XML)
	}
	if err != nil {
		return nil, err
	}
	return Resolve(tree, t.Values, r.ctx, r.opts)
}

// invokeComponent calls the component referenced by the element's tag
// slot with its resolved props and children.
func (r *resolver) invokeComponent(n *parser.Element, children []dom.Node) ([]dom.Node, error) {
	value := r.values[n.TagSlot].Value
	comp, ok := asComponent(value)
	if !ok {
		return nil, terr.Typef("not-callable", "tag slot value of type %T is not a component", value)
	}
	if n.CloseSlot >= 0 && !sameComponent(value, r.values[n.CloseSlot].Value) {
		return nil, terr.Typef("close-mismatch", "closing tag value does not refer to the opening component")
	}

	props := Props{}
	for _, a := range n.Attrs {
		switch {
		case a.Spread:
			v, _, err := r.values[a.SpreadSlot].eval()
			if err != nil {
				return nil, err
			}
			keys, get, ok := stringKeyedMap(v)
			if !ok {
				return nil, terr.Typef("bad-spread", "attribute spread requires a string-keyed mapping, got %T", v)
			}
			for _, k := range keys {
				props[k] = get(k)
			}
		case a.Bool:
			props[a.Name] = true
		default:
			v, t, err := r.attrValue(a)
			if err != nil {
				return nil, err
			}
			if s, ok := v.(string); ok && t.safe {
				v = dom.Safe(s)
			}
			props[a.Name] = v
		}
	}

	if children == nil {
		children = []dom.Node{}
	}
	r.log.Debug("invoking component", "props", len(props), "children", len(children))
	result, err := comp.Render(r.ctx, props, children)
	if err != nil {
		// Component failures are not this engine's to dress up.
		return nil, err
	}
	return r.coerce(result, trust{})
}

// sameComponent reports whether a closing tag's interpolated value
// refers to the component that opened the element. Functions compare by
// code pointer; other values compare by equality when their type allows
// it.
func sameComponent(open, close any) bool {
	if close == nil {
		return false
	}
	ov := reflect.ValueOf(open)
	cv := reflect.ValueOf(close)
	if ov.Kind() == reflect.Func || cv.Kind() == reflect.Func {
		return ov.Kind() == cv.Kind() && ov.Pointer() == cv.Pointer()
	}
	if ov.Type() != cv.Type() {
		return false
	}
	if !ov.Type().Comparable() {
		return true
	}
	return open == close
}

// attrValue evaluates a named attribute's parts. A single-slot value
// keeps its rich type; any literal text or additional slots force
// per-part stringification and concatenation.
func (r *resolver) attrValue(a parser.Attr) (any, trust, error) {
	if len(a.Parts) == 1 && a.Parts[0].Slot >= 0 {
		return r.values[a.Parts[0].Slot].eval()
	}

	var b strings.Builder
	for _, part := range a.Parts {
		if part.Slot < 0 {
			b.WriteString(part.Lit)
			continue
		}
		s, _, err := r.values[part.Slot].evalString()
		if err != nil {
			return nil, trust{}, err
		}
		b.WriteString(s)
	}
	return b.String(), trust{}, nil
}

func (r *resolver) applyAttrs(el *dom.Element, attrs []parser.Attr) error {
	for _, a := range attrs {
		switch {
		case a.Spread:
			v, t, err := r.values[a.SpreadSlot].eval()
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			keys, get, ok := stringKeyedMap(v)
			if !ok {
				return terr.Typef("bad-spread", "attribute spread requires a string-keyed mapping, got %T", v)
			}
			// Go maps are unordered; sorted application keeps renders
			// deterministic.
			for _, k := range keys {
				if err := r.applyAttr(el, k, get(k), t); err != nil {
					return err
				}
			}
		case a.Bool:
			el.SetBoolAttr(a.Name)
		default:
			v, t, err := r.attrValue(a)
			if err != nil {
				return err
			}
			if err := r.applyAttr(el, a.Name, v, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyAttr applies one resolved attribute value with its
// name-specific normalization. Last writer wins in both directions:
// a spread can overwrite or remove a literal attribute and vice versa.
func (r *resolver) applyAttr(el *dom.Element, name string, v any, t trust) error {
	switch name {
	case "class":
		return r.applyClass(el, v, t)
	case "style":
		return r.applyStyle(el, v, t)
	case "data", "aria":
		return r.applyPrefixed(el, name, v, t)
	}

	switch val := v.(type) {
	case nil:
		el.DeleteAttr(name)
	case bool:
		if val {
			el.SetBoolAttr(name)
		} else {
			el.DeleteAttr(name)
		}
	case dom.Markup:
		el.SetTrustedAttr(name, val.ToMarkup())
	case string:
		r.setAttr(el, name, val, t)
	default:
		r.setAttr(el, name, Stringify(v), t)
	}
	return nil
}

func (r *resolver) setAttr(el *dom.Element, name, value string, t trust) {
	if t.safe {
		el.SetTrustedAttr(name, value)
		return
	}
	el.SetAttr(name, value)
}

func (r *resolver) applyClass(el *dom.Element, v any, t trust) error {
	switch val := v.(type) {
	case nil:
		el.DeleteAttr("class")
		return nil
	case bool:
		if !val {
			el.DeleteAttr("class")
			return nil
		}
		return terr.Typef("bad-class", "class attribute cannot be bare true")
	case dom.Markup:
		el.SetTrustedAttr("class", val.ToMarkup())
		return nil
	}
	r.setAttr(el, "class", classList([]any{v}, r.opts.ClassDedup), t)
	return nil
}

func (r *resolver) applyStyle(el *dom.Element, v any, t trust) error {
	switch val := v.(type) {
	case nil:
		el.DeleteAttr("style")
		return nil
	case bool:
		if !val {
			el.DeleteAttr("style")
			return nil
		}
		return terr.Typef("bad-style", "style attribute cannot be bare true")
	case string:
		r.setAttr(el, "style", val, t)
		return nil
	case dom.Markup:
		el.SetTrustedAttr("style", val.ToMarkup())
		return nil
	}

	keys, get, ok := stringKeyedMap(v)
	if !ok {
		return terr.Typef("bad-style", "style attribute requires a string or a property mapping, got %T", v)
	}
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(Stringify(get(k)))
	}
	r.setAttr(el, "style", b.String(), t)
	return nil
}

// applyPrefixed expands data={...} and aria={...} mappings into
// individual attributes. Keys pass through verbatim behind the prefix.
// Data values route through the general value rules, so booleans
// collapse; aria booleans render as the literal "true"/"false" tokens.
func (r *resolver) applyPrefixed(el *dom.Element, name string, v any, t trust) error {
	if v == nil {
		return nil
	}
	keys, get, ok := stringKeyedMap(v)
	if !ok {
		return terr.Typef("bad-"+name, "%s attribute requires a string-keyed mapping, got %T", name, v)
	}
	for _, k := range keys {
		val := get(k)
		attr := name + "-" + k
		if name == "aria" {
			if b, ok := val.(bool); ok {
				r.setAttr(el, attr, strconv.FormatBool(b), t)
				continue
			}
		}
		if err := r.applyAttr(el, attr, val, t); err != nil {
			return err
		}
	}
	return nil
}

// stringKeyedMap views any string-keyed map value as sorted keys plus an
// accessor.
func stringKeyedMap(v any) (keys []string, get func(string) any, ok bool) {
	switch m := v.(type) {
	case Props:
		return sortedKeys(m), func(k string) any { return m[k] }, true
	case map[string]any:
		return sortedKeys(m), func(k string) any { return m[k] }, true
	case map[string]string:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) any { return m[k] }, true
	case map[string]bool:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) any { return m[k] }, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, nil, false
	}
	keys = make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys, func(k string) any {
		return rv.MapIndex(reflect.ValueOf(k)).Interface()
	}, true
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
