package pipeline

import (
	"regexp"
	"strings"
)

// Inline markers.
const (
	strongMarker   = "**"
	emphasisMarker = "*"
)

// Single-backtick code span; no nested backticks.
var inlineCodeSpan = regexp.MustCompile("`([^`]+)`")

// inlineRuns holds the captured content of each inline category, indexed by
// the number embedded in its placeholder.
type inlineRuns struct {
	code     []string
	strong   []string
	emphasis []string
}

// applyInline renders inline code, strong and emphasis. Each category is
// swapped for placeholders as it is found (code first, so asterisks inside
// code are never seen by the later passes) and all of them are restored at
// the end, code last.
func applyInline(content string) string {
	var runs inlineRuns

	content = replaceSubmatches(inlineCodeSpan, content, func(m []string) string {
		runs.code = append(runs.code, m[1])
		return placeholder(kindInlineCode, len(runs.code)-1)
	})

	content = replaceDelimited(content, strongMarker, false, func(inner string) string {
		runs.strong = append(runs.strong, inner)
		return placeholder(kindStrong, len(runs.strong)-1)
	})

	content = replaceDelimited(content, emphasisMarker, true, func(inner string) string {
		runs.emphasis = append(runs.emphasis, inner)
		return placeholder(kindEmphasis, len(runs.emphasis)-1)
	})

	// Emphasis content may hold strong tokens ("*a **b** c*") but never the
	// reverse, so emphasis is restored first.
	content = replacePlaceholders(content, kindEmphasis, func(idx int) (string, bool) {
		if idx >= len(runs.emphasis) {
			return "", false
		}
		return "<i>" + runs.emphasis[idx] + "</i>", true
	})
	content = replacePlaceholders(content, kindStrong, func(idx int) (string, bool) {
		if idx >= len(runs.strong) {
			return "", false
		}
		return "<b>" + emphasize(runs.strong[idx]) + "</b>", true
	})
	return replacePlaceholders(content, kindInlineCode, func(idx int) (string, bool) {
		if idx >= len(runs.code) {
			return "", false
		}
		return "<code>" + runs.code[idx] + "</code>", true
	})
}

// emphasize renders emphasis nested inside a strong run.
func emphasize(content string) string {
	return replaceDelimited(content, emphasisMarker, true, func(inner string) string {
		return "<i>" + inner + "</i>"
	})
}

// replaceDelimited replaces each marker...marker run in s with wrap(inner).
// Matching is non-greedy and scans left to right. A closing marker may not
// be followed by another '*'; with guardBefore, an opening marker may not be
// preceded by one either. Unmatched markers are left as literal text.
func replaceDelimited(s, marker string, guardBefore bool, wrap func(inner string) string) string {
	if !strings.Contains(s, marker) {
		return s
	}
	n := len(marker)

	// Valid closer positions depend only on s, so collect them once and
	// walk them with a cursor as openings advance.
	var closers []int
	for j := 0; j+n <= len(s); j++ {
		if s[j:j+n] == marker && (j+n == len(s) || s[j+n] != '*') {
			closers = append(closers, j)
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	last, next := 0, 0

	for i := 0; i+n <= len(s); {
		if s[i:i+n] != marker || (guardBefore && i > 0 && s[i-1] == '*') {
			i++
			continue
		}
		for next < len(closers) && closers[next] <= i+n {
			next++
		}
		if next == len(closers) {
			break
		}
		j := closers[next]
		b.WriteString(s[last:i])
		b.WriteString(wrap(s[i+n : j]))
		i = j + n
		last = i
	}

	b.WriteString(s[last:])
	return b.String()
}
