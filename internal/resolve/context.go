package resolve

import (
	"sync"

	"github.com/conneroisu/tdom/internal/dom"
)

// Props carries the resolved attributes of a component invocation,
// keyed by attribute name exactly as written in the template (hyphens
// preserved).
type Props map[string]any

// Get returns the prop value, or nil when absent.
func (p Props) Get(name string) any {
	return p[name]
}

// String returns the prop stringified with the engine's default
// conversion, or "" when absent.
func (p Props) String(name string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// Bool returns the prop as a bool; absent or non-bool props report
// their truthiness.
func (p Props) Bool(name string) bool {
	return truthy(p[name])
}

// Component is the capability required of a value used in tag position.
// Render receives the render-scoped context, the resolved attributes and
// the already-resolved children (empty slice when none were written).
// Components ignore the props and children they do not need; children
// handed to a component that ignores them leave no trace in the output.
//
// The return value is coerced by the same rule as content
// interpolations: nil contributes nothing, a Node is inserted as-is
// (fragments spliced), a Template is rendered recursively, strings
// become text, slices become siblings, anything else is stringified.
type Component interface {
	Render(ctx *Context, props Props, children []dom.Node) (any, error)
}

// Func adapts a plain function to the Component interface.
type Func func(ctx *Context, props Props, children []dom.Node) (any, error)

// Render implements Component.
func (f Func) Render(ctx *Context, props Props, children []dom.Node) (any, error) {
	return f(ctx, props, children)
}

// asComponent recognizes the accepted component value shapes.
func asComponent(v any) (Component, bool) {
	switch c := v.(type) {
	case Component:
		return c, true
	case func(*Context, Props, []dom.Node) (any, error):
		return Func(c), true
	case func(Props, []dom.Node) any:
		return Func(func(_ *Context, props Props, children []dom.Node) (any, error) {
			return c(props, children), nil
		}), true
	case func(Props) any:
		return Func(func(_ *Context, props Props, _ []dom.Node) (any, error) {
			return c(props), nil
		}), true
	case func() any:
		return Func(func(*Context, Props, []dom.Node) (any, error) {
			return c(), nil
		}), true
	default:
		return nil, false
	}
}

// Context is an unopinionated render-scoped container threaded by
// reference to every component invocation in one render. Components may
// read and write it; the same object reaches every descendant, it is
// never copied.
type Context struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewContext creates an empty render context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Set stores a value under key, visible to every later component in the
// same render.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.values[key]
	return ok
}
