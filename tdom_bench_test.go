package tdom_test

import (
	"testing"

	"github.com/conneroisu/tdom"
)

func BenchmarkRenderStatic(b *testing.B) {
	template := tdom.T([]string{`<div class="box"><p>hello</p><br></div>`})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := tdom.Render(template); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderInterpolated(b *testing.B) {
	chunks := []string{`<a class=`, ` href="/u/`, `">`, `</a>`}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		template := tdom.T(chunks, []any{"link", "active"}, 42, "profile")
		if _, err := tdom.Render(template); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderList(b *testing.B) {
	items := make([]any, 50)
	for i := range items {
		items[i] = tdom.T([]string{"<li>", "</li>"}, i)
	}
	template := tdom.T([]string{"<ul>", "</ul>"}, items)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := tdom.Render(template); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShapeCacheHit(b *testing.B) {
	cache := tdom.NewCache(16)
	template := tdom.T([]string{"<p>", "</p>"}, "x")
	if _, err := tdom.Render(template, tdom.WithCache(cache)); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tdom.Render(template, tdom.WithCache(cache)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	node, err := tdom.Html(tdom.T([]string{`<div class="a"><p>one</p><p>two</p><ul><li>x</li><li>y</li></ul></div>`}))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = node.String()
	}
}
