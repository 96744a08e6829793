package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Precompiled regex patterns for performance.
var (
	// <think>...</think> and <thinking>...</thinking>; an unclosed tag runs
	// to the end of the input so half-streamed reasoning never leaks.
	thinkBlock = regexp.MustCompile(`(?is)<think(?:ing)?>.*?(?:</think(?:ing)?>|$)`)

	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// Preprocess prepares raw model output for the rest of the pipeline.
// Order matters: reasoning spans are removed before rune folding so a
// closing tag is still recognized, and line endings are normalized last.
func Preprocess(content string) string {
	if content == "" {
		return content
	}
	content = stripThinking(content)
	content = foldRunes(content)
	content = normalizeLineEndings(content)
	return content
}

// stripThinking removes <think>/<thinking> spans.
func stripThinking(content string) string {
	if !strings.Contains(strings.ToLower(content), "<think") {
		return content
	}
	return thinkBlock.ReplaceAllString(content, "")
}

// foldRunes maps narrow, non-breaking and figure spaces to U+0020 and drops
// the placeholder delimiter runes. A transformer chain holds buffers, so a
// fresh one is built per call.
func foldRunes(content string) string {
	chain := transform.Chain(
		runes.Map(foldSpace),
		runes.Remove(runes.Predicate(isPlaceholderRune)),
	)
	folded, _, err := transform.String(chain, content)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isPlaceholderRune(r) {
				return -1
			}
			return foldSpace(r)
		}, content)
	}
	return folded
}

func foldSpace(r rune) rune {
	switch r {
	case '\u00a0', '\u202f', '\u2007':
		return ' '
	}
	return r
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
