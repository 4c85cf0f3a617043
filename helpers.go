package tdom

import (
	"github.com/conneroisu/tdom/internal/resolve"
	"github.com/conneroisu/tdom/internal/shape"
)

// Classnames flattens its arguments into a space-joined class string:
// strings pass through, maps contribute the keys with truthy values,
// slices flatten recursively, nil and booleans are dropped.
func Classnames(args ...any) string {
	return resolve.Classnames(args...)
}

// Stringify renders a value with the engine's default string
// conversion: nil becomes "", strings pass through, Stringer and error
// use their own rendering, everything else goes through fmt.
func Stringify(v any) string {
	return resolve.Stringify(v)
}

// Convert applies a conversion to a value: 's' for default string
// conversion, 'r' for a quoted representation, 'a' for a quoted
// representation with non-ASCII escaped.
func Convert(v any, conv byte) (string, error) {
	return resolve.Convert(v, conv)
}

// Fingerprint computes the structural cache key of a chunk sequence,
// exposed for cache diagnostics.
func Fingerprint(chunks []string, xml bool) string {
	return shape.Fingerprint(chunks, xml)
}
