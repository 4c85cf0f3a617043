package tdom

// T builds a Template from its static chunk sequence and the values
// interpolated between the chunks. Plain values become default
// interpolations; pass an Interpolation built with V to attach a
// conversion or format spec. The chunk count must be exactly one more
// than the value count, matching how a literal template splits around
// its interpolations.
func T(chunks []string, values ...any) Template {
	interps := make([]Interpolation, len(values))
	for i, v := range values {
		if in, ok := v.(Interpolation); ok {
			interps[i] = in
			continue
		}
		interps[i] = Interpolation{Value: v}
	}
	return Template{Strings: chunks, Values: interps}
}

// V wraps a value as an interpolation so a conversion or format spec can
// be chained:
//
//	tdom.V(total).WithFormat(".2f")
//	tdom.V(path).WithConv('r')
func V(v any) Interpolation {
	return Interpolation{Value: v}
}
