package pipeline

import (
	"regexp"
	"strings"
)

// headingRule turns one marker length into a heading element.
type headingRule struct {
	pattern *regexp.Regexp
	repl    string
}

// Precompiled regex patterns for performance.
var (
	// Longest marker first so "####" is not swallowed by "#".
	headingRules = []headingRule{
		{regexp.MustCompile(`(?m)^#### (.+)$`), "<h4>$1</h4>"},
		{regexp.MustCompile(`(?m)^### (.+)$`), "<h3>$1</h3>"},
		{regexp.MustCompile(`(?m)^## (.+)$`), "<h2>$1</h2>"},
		{regexp.MustCompile(`(?m)^# (.+)$`), "<h1>$1</h1>"},
	}

	// Runs of quoted lines. The text is already escaped, so the marker is &gt;.
	blockquoteRun    = regexp.MustCompile(`(^|\n)([ \t]*&gt; .+(?:\n[ \t]*&gt; .+)*)`)
	blockquoteMarker = regexp.MustCompile(`^[ \t]*&gt;\s*`)

	// Runs of "- " or "* " items.
	listRun    = regexp.MustCompile(`(^|\n)([ \t]*[-*] .+(?:\n[ \t]*[-*] .+)*)`)
	listMarker = regexp.MustCompile(`^[ \t]*[-*]\s+`)

	horizontalRule = regexp.MustCompile(`(?m)^---[ \t]*$`)
)

// formatBlocks applies the block-level formatters in a fixed order chosen so
// that no formatter's output collides with a later formatter's input.
func formatBlocks(content string) string {
	content = formatHeadings(content)
	content = formatBlockquotes(content)
	content = formatLists(content)
	content = formatTables(content)
	content = formatRules(content)
	return content
}

// formatHeadings converts "# " to "#### " lines into <h1>..<h4>.
func formatHeadings(content string) string {
	if !strings.Contains(content, "# ") {
		return content
	}
	for _, rule := range headingRules {
		content = rule.pattern.ReplaceAllString(content, rule.repl)
	}
	return content
}

// formatBlockquotes merges consecutive "> " lines into one <blockquote>.
// Lines are rejoined with <br> rather than \n so the quoted text is no longer
// line-initial for the list and table formatters that run next.
func formatBlockquotes(content string) string {
	if !strings.Contains(content, "&gt; ") {
		return content
	}
	return replaceSubmatches(blockquoteRun, content, func(m []string) string {
		lines := strings.Split(m[2], "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(blockquoteMarker.ReplaceAllString(line, ""))
		}
		return m[1] + "<blockquote>" + strings.Join(lines, "<br>") + "</blockquote>"
	})
}

// formatLists turns consecutive "- " / "* " lines into one flat <ul>.
func formatLists(content string) string {
	return replaceSubmatches(listRun, content, func(m []string) string {
		var b strings.Builder
		b.WriteString(m[1])
		b.WriteString("<ul>")
		for _, line := range strings.Split(m[2], "\n") {
			b.WriteString("<li>")
			b.WriteString(strings.TrimSpace(listMarker.ReplaceAllString(line, "")))
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		return b.String()
	})
}

// formatRules converts lines consisting solely of "---" into <hr>.
func formatRules(content string) string {
	return horizontalRule.ReplaceAllString(content, "<hr>")
}

// replaceSubmatches is ReplaceAllStringFunc with access to capture groups.
func replaceSubmatches(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(repl(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
