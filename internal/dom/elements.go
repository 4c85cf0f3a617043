package dom

// voidElements never carry children and never emit a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements have opaque bodies: their content is parsed as text
// rather than nested markup.
var rawTextElements = map[string]bool{
	"plaintext": true,
	"script":    true,
	"style":     true,
	"textarea":  true,
	"title":     true,
	"xmp":       true,
}

// IsVoid reports whether tag is a void element. The tag is expected to be
// lowercase already.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// IsRawText reports whether tag is a raw-text element whose body is
// opaque to the parser.
func IsRawText(tag string) bool {
	return rawTextElements[tag]
}
