package resolve

import (
	"fmt"
	"strconv"
	"strings"

	terr "github.com/conneroisu/tdom/internal/errors"
)

// Template is the explicit pairing of static text chunks and
// interpolation descriptors: the engine's stand-in for a host literal
// template. Strings always has exactly one more element than Values.
// A Template is a plain value; it carries no parsed state.
type Template struct {
	Strings []string
	Values  []Interpolation
}

// Interpolation is one dynamic value with optional conversion and
// format metadata.
//
// Conv mirrors the host conversion step: 's' for default string
// conversion, 'r' for a quoted representation, 'a' for a quoted
// representation with non-ASCII escaped; zero means no conversion.
//
// Format is a comma-separated spec applied after conversion: the tokens
// "safe" and "unsafe" adjust escaping trust, any other token is a
// fmt-style verb without the leading '%' (for example "05d" or ".2f").
type Interpolation struct {
	Value  any
	Conv   byte
	Format string
}

// WithConv returns a copy of the interpolation with the conversion set.
func (in Interpolation) WithConv(conv byte) Interpolation {
	in.Conv = conv
	return in
}

// WithFormat returns a copy of the interpolation with the format spec
// set.
func (in Interpolation) WithFormat(format string) Interpolation {
	in.Format = format
	return in
}

// trust carries the escaping directives attached to one interpolation.
type trust struct {
	safe   bool
	unsafe bool
}

// parseFormat splits a format spec into its escaping flags and fmt
// verb. Requesting both safe and unsafe on one interpolation is a
// template-shape error.
func parseFormat(format string) (verb string, t trust, err error) {
	if format == "" {
		return "", trust{}, nil
	}
	for _, tok := range strings.Split(format, ",") {
		switch tok = strings.TrimSpace(tok); tok {
		case "":
		case "safe":
			t.safe = true
		case "unsafe":
			t.unsafe = true
		default:
			verb = tok
		}
	}
	if t.safe && t.unsafe {
		return "", trust{}, terr.Syntaxf("safe-unsafe-conflict", "safe and unsafe are mutually exclusive on one interpolation")
	}
	return verb, t, nil
}

// eval applies the interpolation's conversion and format spec, returning
// the effective value and its escaping trust. The value stays rich
// (bool, map, Node, ...) when no conversion or verb forces it into a
// string.
func (in Interpolation) eval() (any, trust, error) {
	verb, t, err := parseFormat(in.Format)
	if err != nil {
		return nil, trust{}, err
	}

	v := in.Value
	if in.Conv != 0 {
		s, err := Convert(v, in.Conv)
		if err != nil {
			return nil, trust{}, err
		}
		v = s
	}
	if verb != "" {
		// Host formatting semantics propagate unmodified: a verb the
		// value does not support renders fmt's %! diagnostic text.
		v = fmt.Sprintf("%"+verb, v)
	}
	return v, t, nil
}

// evalString is eval followed by default string conversion, for
// positions that require a single final string.
func (in Interpolation) evalString() (string, trust, error) {
	v, t, err := in.eval()
	if err != nil {
		return "", trust{}, err
	}
	return Stringify(v), t, nil
}

// Stringify renders a value with the engine's default string
// conversion.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case error:
		return s.Error()
	default:
		return fmt.Sprint(v)
	}
}

// Convert exposes the standalone conversion step: 's' default string
// conversion, 'r' quoted representation, 'a' quoted representation with
// non-ASCII characters escaped. A zero conversion is the identity
// stringification.
func Convert(v any, conv byte) (string, error) {
	switch conv {
	case 0, 's':
		return Stringify(v), nil
	case 'r':
		if s, ok := v.(string); ok {
			return strconv.Quote(s), nil
		}
		return fmt.Sprintf("%#v", v), nil
	case 'a':
		if s, ok := v.(string); ok {
			return strconv.QuoteToASCII(s), nil
		}
		return escapeNonASCII(fmt.Sprintf("%#v", v)), nil
	default:
		return "", terr.Typef("bad-conversion", "unknown conversion %q", string(conv))
	}
}

func escapeNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		q := strconv.QuoteRuneToASCII(r)
		// Strip the surrounding single quotes.
		b.WriteString(q[1 : len(q)-1])
	}
	return b.String()
}
