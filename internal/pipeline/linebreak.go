package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Three or more breaks read as one paragraph gap.
	excessBreaks = regexp.MustCompile(`(?:<br>\s*){3,}`)

	// Keep a single break before block elements when breaks exist.
	breaksBeforeBlock = regexp.MustCompile(`(?:<br>\s*)+(<(?:h[1-4]|hr|table|ul|ol|blockquote)\b[^>]*>)`)

	// After tables, quotes and rules keep at most one break.
	breaksAfterBlock = regexp.MustCompile(`(</(?:table|blockquote)>|<hr>)\s*(?:<br>\s*)+`)

	// Headings and lists carry their own spacing: no break after them.
	breaksAfterTightBlock = regexp.MustCompile(`(</h[1-4]>|</(?:ul|ol)>)(?:<br>\s*)+`)
)

// normalizeLineBreaks converts the remaining newlines to <br> and tidies the
// breaks around block elements. Code blocks are still placeholders here, so
// their newlines are untouched.
func normalizeLineBreaks(content string) string {
	if !strings.Contains(content, "\n") {
		return content
	}
	content = strings.ReplaceAll(content, "\n", "<br>")
	content = excessBreaks.ReplaceAllString(content, "<br><br>")
	content = breaksBeforeBlock.ReplaceAllString(content, "<br>${1}")
	content = breaksAfterBlock.ReplaceAllString(content, "${1}<br>")
	return breaksAfterTightBlock.ReplaceAllString(content, "${1}")
}
