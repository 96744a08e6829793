package pipeline

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// quoteEscaper finishes attribute escaping for text that already went
	// through escapeHTML. Ampersands are left alone so entities are not
	// escaped twice; angle brackets can only come from pipeline markup.
	quoteEscaper = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// escapeHTML escapes text for element content.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escapeAttr escapes raw text for a double- or single-quoted attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeEscapedAttr makes already HTML-escaped text safe inside an attribute.
func escapeEscapedAttr(s string) string {
	return quoteEscaper.Replace(s)
}
