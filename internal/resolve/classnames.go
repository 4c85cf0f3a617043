package resolve

import (
	"reflect"
	"sort"
	"strings"
)

// Classnames flattens its arguments into a space-joined class string.
// Strings pass through, maps contribute the keys whose values are
// truthy (in sorted key order), slices and arrays flatten recursively,
// nil and false entries are dropped. Repeated names are preserved in
// source order.
func Classnames(args ...any) string {
	return classList(args, false)
}

// classList is Classnames with an optional first-occurrence-wins
// deduplication pass.
func classList(args []any, dedup bool) string {
	var names []string
	for _, arg := range args {
		flattenClass(arg, &names)
	}
	if dedup {
		seen := make(map[string]bool, len(names))
		kept := names[:0]
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			kept = append(kept, name)
		}
		names = kept
	}
	return strings.Join(names, " ")
}

func flattenClass(v any, out *[]string) {
	switch val := v.(type) {
	case nil:
		return
	case bool:
		// Bare booleans carry no class name.
		return
	case string:
		if val != "" {
			*out = append(*out, val)
		}
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			flattenClass(rv.Index(i).Interface(), out)
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			*out = append(*out, Stringify(v))
			return
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			if truthy(rv.MapIndex(reflect.ValueOf(k)).Interface()) {
				*out = append(*out, k)
			}
		}
	default:
		*out = append(*out, Stringify(v))
	}
}

// truthy follows the host's truthiness rules for class-map values: nil,
// false, empty strings, zero numbers and empty collections are falsy.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
