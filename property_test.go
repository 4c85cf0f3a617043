//go:build property

package tdom_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/tdom"
)

func TestEscapingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("escaped text never contains markup characters", prop.ForAll(
		func(s string) bool {
			escaped := tdom.EscapeText(s)
			return !strings.ContainsAny(escaped, `<>"'`)
		},
		gen.AnyString(),
	))

	properties.Property("rendered text content never breaks out of its element", prop.ForAll(
		func(s string) bool {
			out, err := tdom.Render(tdom.T([]string{"<p>", "</p>"}, s))
			if err != nil {
				return false
			}
			inner := strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
			return !strings.ContainsAny(inner, `<>"'`)
		},
		gen.AnyString(),
	))

	properties.Property("attribute values never contain a raw quote", prop.ForAll(
		func(s string) bool {
			out, err := tdom.Render(tdom.T([]string{`<a title="`, `">x</a>`}, s))
			if err != nil {
				return false
			}
			body := strings.TrimSuffix(strings.TrimPrefix(out, `<a title="`), `">x</a>`)
			return !strings.Contains(body, `"`)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	word := gen.RegexMatch("[a-z][a-z0-9]{0,11}")

	properties.Property("boolean attribute presence mirrors the value", prop.ForAll(
		func(b bool) bool {
			out, err := tdom.Render(tdom.T([]string{"<input disabled=", ">"}, b))
			if err != nil {
				return false
			}
			if b {
				return out == "<input disabled>"
			}
			return out == "<input>"
		},
		gen.Bool(),
	))

	properties.Property("plain word content renders verbatim", prop.ForAll(
		func(w string) bool {
			out, err := tdom.Render(tdom.T([]string{"<p>", "</p>"}, w))
			return err == nil && out == "<p>"+w+"</p>"
		},
		word,
	))

	properties.Property("serialization is a parse fixpoint for simple trees", prop.ForAll(
		func(tag string, text string) bool {
			el := tdom.NewElement(tag, tdom.NewText(text))
			node, err := tdom.Parse(el.String())
			if err != nil {
				return false
			}
			return node.String() == el.String()
		},
		gen.OneConstOf("div", "p", "span", "em", "li"),
		word,
	))

	properties.Property("list interpolation preserves order and count", prop.ForAll(
		func(words []string) bool {
			items := make([]any, len(words))
			for i, w := range words {
				items[i] = tdom.T([]string{"<li>", "</li>"}, w)
			}
			out, err := tdom.Render(tdom.T([]string{"<ul>", "</ul>"}, items))
			if err != nil {
				return false
			}
			expected := "<ul>"
			for _, w := range words {
				expected += "<li>" + w + "</li>"
			}
			return out == expected+"</ul>"
		},
		gen.SliceOf(word),
	))

	properties.TestingRun(t)
}

func TestClassnamesProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	word := gen.RegexMatch("[a-z][a-z0-9-]{0,11}")

	properties.Property("flattening a string slice joins with single spaces", prop.ForAll(
		func(names []string) bool {
			args := make([]any, len(names))
			for i, n := range names {
				args[i] = n
			}
			return tdom.Classnames(args...) == strings.Join(names, " ")
		},
		gen.SliceOf(word),
	))

	properties.Property("nil and false arguments never contribute", prop.ForAll(
		func(name string) bool {
			return tdom.Classnames(nil, false, name, true) == name
		},
		word,
	))

	properties.TestingRun(t)
}

func TestCacheProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	word := gen.RegexMatch("[a-z]{1,8}")

	properties.Property("caching never changes the rendered output", prop.ForAll(
		func(w string) bool {
			template := tdom.T([]string{"<p>", "</p>"}, w)
			cached, err := tdom.Render(template, tdom.WithCache(tdom.NewCache(1)))
			if err != nil {
				return false
			}
			again, err := tdom.Render(template, tdom.WithCache(tdom.NewCache(1)))
			if err != nil {
				return false
			}
			return cached == again
		},
		word,
	))

	properties.Property("fingerprints distinguish chunk boundaries", prop.ForAll(
		func(a, b string) bool {
			joined := tdom.Fingerprint([]string{a + b}, false)
			split := tdom.Fingerprint([]string{a, b}, false)
			return joined != split
		},
		word, word,
	))

	properties.TestingRun(t)
}
