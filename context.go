package tdom

import "github.com/conneroisu/tdom/internal/resolve"

// Context is the render-scoped container threaded by reference to every
// component invocation of one render.
type Context = resolve.Context

// NewContext creates an empty render context for sharing state across
// the components of one render.
func NewContext() *Context {
	return resolve.NewContext()
}
