// Package validation performs structural checks on rendered or static
// markup, independent of the template engine's own parser. It tokenizes
// with golang.org/x/net/html and reports issues a lenient browser would
// silently repair.
package validation

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/conneroisu/tdom/internal/dom"
	"github.com/conneroisu/tdom/internal/logging"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding in a markup document.
type Issue struct {
	Rule     string
	Severity Severity
	Message  string
	// Offset is the byte position of the offending token.
	Offset int
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s at offset %d (%s)", i.Severity, i.Message, i.Offset, i.Rule)
}

// Checker validates markup documents.
type Checker struct {
	log *logging.Logger
}

// New creates a checker. A nil logger disables logging.
func New(log *logging.Logger) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	return &Checker{log: log.WithComponent("validation")}
}

type openTag struct {
	name   string
	offset int
}

// Check tokenizes the markup and reports structural issues: duplicated
// attributes, closing tags on void elements, mismatched or unclosed
// tags, and images without alternative text.
func (c *Checker) Check(markup string) []Issue {
	var issues []Issue
	var stack []openTag
	offset := 0

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		tokStart := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			issues = append(issues, checkAttrs(tok, tokStart)...)
			if tok.Data == "img" && !hasAttr(tok, "alt") {
				issues = append(issues, Issue{
					Rule:     "img-alt",
					Severity: SeverityWarning,
					Message:  "<img> without alt text",
					Offset:   tokStart,
				})
			}
			if tt == html.StartTagToken && !dom.IsVoid(tok.Data) {
				stack = append(stack, openTag{name: tok.Data, offset: tokStart})
			}
		case html.EndTagToken:
			if dom.IsVoid(tok.Data) {
				issues = append(issues, Issue{
					Rule:     "void-close",
					Severity: SeverityError,
					Message:  fmt.Sprintf("closing tag </%s> on a void element", tok.Data),
					Offset:   tokStart,
				})
				continue
			}
			if len(stack) == 0 {
				issues = append(issues, Issue{
					Rule:     "unmatched-close",
					Severity: SeverityError,
					Message:  fmt.Sprintf("closing tag </%s> with no open element", tok.Data),
					Offset:   tokStart,
				})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.name != tok.Data {
				issues = append(issues, Issue{
					Rule:     "tag-mismatch",
					Severity: SeverityError,
					Message:  fmt.Sprintf("closing tag </%s> does not match open <%s>", tok.Data, top.name),
					Offset:   tokStart,
				})
			}
		}
	}

	for _, open := range stack {
		issues = append(issues, Issue{
			Rule:     "unclosed-tag",
			Severity: SeverityError,
			Message:  fmt.Sprintf("element <%s> is never closed", open.name),
			Offset:   open.offset,
		})
	}

	c.log.Debug("checked markup", "bytes", len(markup), "issues", len(issues))
	return issues
}

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func checkAttrs(tok html.Token, offset int) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(tok.Attr))
	for _, a := range tok.Attr {
		if seen[a.Key] {
			issues = append(issues, Issue{
				Rule:     "duplicate-attr",
				Severity: SeverityError,
				Message:  fmt.Sprintf("attribute %q repeated on <%s>", a.Key, tok.Data),
				Offset:   offset,
			})
		}
		seen[a.Key] = true
	}
	return issues
}

func hasAttr(tok html.Token, name string) bool {
	for _, a := range tok.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
