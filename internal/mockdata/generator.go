// Package mockdata generates placeholder values for template
// interpolations and component props, keyed off prop names. It backs
// the CLI preview server and randomized tests.
package mockdata

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/conneroisu/tdom/internal/resolve"
)

// Generator produces mock values with a private random source so runs
// are reproducible under Seed.
type Generator struct {
	faker *gofakeit.Faker
}

// New creates a generator seeded from the system clock.
func New() *Generator {
	return &Generator{faker: gofakeit.New(0)}
}

// NewSeeded creates a generator with a fixed seed for reproducible
// output.
func NewSeeded(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Props generates a prop map with a mock value for every name.
func (g *Generator) Props(names ...string) resolve.Props {
	props := make(resolve.Props, len(names))
	for _, name := range names {
		props[name] = g.Value(name)
	}
	return props
}

// Value generates a mock value fitting the prop name. Names with no
// recognizable pattern get a single word.
func (g *Generator) Value(name string) any {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "email", "mail"):
		return g.faker.Email()
	case containsAny(lower, "class"):
		return []string{g.faker.Word(), g.faker.Word()}
	case containsAny(lower, "firstname", "lastname", "username", "author", "name"):
		return g.faker.Name()
	case containsAny(lower, "url", "link", "href", "src", "avatar"):
		return g.faker.URL()
	case containsAny(lower, "title", "heading", "header"):
		return g.faker.Sentence(3)
	case containsAny(lower, "description", "content", "text", "body", "message"):
		return g.faker.Sentence(8)
	case containsAny(lower, "uuid", "id", "key"):
		return g.faker.UUID()
	case containsAny(lower, "date", "time", "created", "updated"):
		return g.faker.Date()
	case containsAny(lower, "age", "count", "number", "quantity"):
		return g.faker.Number(1, 100)
	case containsAny(lower, "price", "amount", "total"):
		return g.faker.Price(1, 500)
	case containsAny(lower, "active", "enabled", "visible", "public", "featured", "selected", "checked", "disabled"):
		return g.faker.Bool()
	case containsAny(lower, "color", "colour", "background", "theme"):
		return g.faker.HexColor()
	default:
		return g.faker.Word()
	}
}

// Values generates n generic mock strings, for filling content slots.
func (g *Generator) Values(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = g.faker.Sentence(4)
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
