package pipeline

import (
	"regexp"
	"strings"
)

var firstHeading = regexp.MustCompile(`(?m)^# (.+)$`)

// FirstHeading returns the text of the first level-one heading the renderer
// would emit for markdown, or "". Thinking spans and fenced code are skipped
// the same way Render skips them.
func FirstHeading(markdown string) string {
	text, _ := extractCodeBlocks(BalanceFences(Preprocess(markdown)))
	m := firstHeading.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
