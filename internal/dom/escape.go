package dom

import (
	"regexp"
	"strings"
)

// textEscaper covers the five characters that are unsafe in text and
// attribute-value contexts.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// scriptEscapes covers the three sequences the WHATWG content
// restrictions call out for script bodies; the tag name's case is
// preserved through the capture group.
var scriptEscapes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)<!--`), `\x3c!--`},
	{regexp.MustCompile(`(?i)<(script)`), `\x3c$1`},
	{regexp.MustCompile(`(?i)</(script)`), `\x3c/$1`},
}

var styleClose = regexp.MustCompile(`(?i)</style`)

// EscapeText escapes s for general text and attribute-value contexts,
// replacing &, <, >, " and ' with entity references. It is not guarded
// against double escaping; escaping already-escaped text is a caller
// error.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeScript neutralizes the sequences that can terminate or
// restructure a <script> body: "<!--", "<script" and "</script",
// case-insensitively, each with the "<" rewritten as \x3c. Everything
// else stays raw JS.
func EscapeScript(s string) string {
	for _, e := range scriptEscapes {
		s = e.re.ReplaceAllString(s, e.repl)
	}
	return s
}

// EscapeStyle neutralizes premature closing of a <style> body without
// entity-escaping the CSS itself.
func EscapeStyle(s string) string {
	return styleClose.ReplaceAllStringFunc(s, func(m string) string {
		return `<\/` + m[2:]
	})
}

// Markup is the safe-markup capability: a value that declares itself
// pre-escaped. The serializer emits such values verbatim.
type Markup interface {
	ToMarkup() string
}

// Safe marks a string as trusted, pre-escaped markup.
type Safe string

// ToMarkup implements Markup.
func (s Safe) ToMarkup() string {
	return string(s)
}
