// Package tdom renders templates of static markup chunks and typed
// interpolation values into document trees.
//
// A template is built with T from its chunk sequence and values:
//
//	t := tdom.T([]string{"<p>", "</p>"}, name)
//	node, err := tdom.Html(t)
//
// Html parses the chunk sequence into a cached structural shape,
// substitutes the values according to their syntactic position (tag,
// attribute or content) and returns an immutable node tree. The tree
// serializes through String or RenderTo with context-sensitive
// escaping; values marked Safe pass through verbatim.
//
// Interpolated tags invoke components: any value satisfying Component,
// or a plain function of one of the recognized shapes, receives the
// render context, its resolved attributes as Props and its resolved
// children, and its return value is coerced by the same rule as content
// interpolations.
package tdom

import (
	"io"

	"github.com/conneroisu/tdom/internal/logging"
	"github.com/conneroisu/tdom/internal/resolve"
	"github.com/conneroisu/tdom/internal/shape"
)

// Template machinery, re-exported from the resolve package.
type (
	Template      = resolve.Template
	Interpolation = resolve.Interpolation
	Props         = resolve.Props
	Component     = resolve.Component
	ComponentFunc = resolve.Func
)

// Cache is a bounded LRU of parsed template shapes.
type Cache = shape.Cache

// Logger is the engine's structured logger.
type Logger = logging.Logger

// NewCache creates a shape cache holding at most capacity parsed
// shapes. A non-positive capacity selects the default of 512.
func NewCache(capacity int) *Cache {
	return shape.New(capacity)
}

// NewLogger creates a structured logger. level is one of "debug",
// "info", "warn", "error"; format is "text" or "json"; a nil writer
// logs to stderr.
func NewLogger(level, format string, out io.Writer) *Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: format,
		Output: out,
	})
}

// defaultShapes backs renders that do not bring their own cache.
var defaultShapes = shape.New(shape.DefaultCapacity)

// CacheStats reports hit, miss and eviction counters of the default
// shape cache.
func CacheStats() (hits, misses, evictions int64) {
	return defaultShapes.Stats()
}

// Option adjusts one render.
type Option func(*config)

type config struct {
	ctx        *Context
	classDedup bool
	shapes     *shape.Cache
	logger     *logging.Logger
}

// WithContext threads an existing context through the render instead of
// a fresh one.
func WithContext(ctx *Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithClassDedup collapses repeated class names to their first
// occurrence when flattening class values.
func WithClassDedup() Option {
	return func(c *config) { c.classDedup = true }
}

// WithCache substitutes a private shape cache for the package default.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.shapes = cache }
}

// WithLogger attaches a logger to the render.
func WithLogger(l *Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	cfg := config{shapes: defaultShapes}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Html resolves the template in HTML mode: tag names lowercase, void
// elements stay childless and raw-text elements suppress escaping of
// their literal content.
func Html(t Template, opts ...Option) (Node, error) {
	return eval(t, false, newConfig(opts))
}

// Svg resolves the template in XML mode: tag case is preserved,
// childless elements self-close and boolean attributes render with
// empty values.
func Svg(t Template, opts ...Option) (Node, error) {
	return eval(t, true, newConfig(opts))
}

func eval(t Template, xml bool, cfg config) (Node, error) {
	tree, err := cfg.shapes.GetOrParse(t.Strings, xml)
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(tree, t.Values, cfg.ctx, resolve.Options{
		XML:        xml,
		ClassDedup: cfg.classDedup,
		Shapes:     cfg.shapes,
		Logger:     cfg.logger,
	})
}

// Render resolves the template in HTML mode and serializes the result.
func Render(t Template, opts ...Option) (string, error) {
	node, err := Html(t, opts...)
	if err != nil {
		return "", err
	}
	return node.String(), nil
}

// Parse parses a plain markup string with no interpolations into a node
// tree, applying the same structural rules as templates: whitespace
// trimming, void and raw-text element handling and single-root
// unwrapping.
func Parse(markup string) (Node, error) {
	return eval(Template{Strings: []string{markup}}, false, newConfig(nil))
}

// ParseXML is Parse with XML mode structural rules.
func ParseXML(markup string) (Node, error) {
	return eval(Template{Strings: []string{markup}}, true, newConfig(nil))
}
