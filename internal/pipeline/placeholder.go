package pipeline

import (
	"strconv"
	"strings"
)

// Placeholder delimiters use Unicode Private Use Area characters.
// Preprocess strips both runes from input, so every token a later stage
// sees was minted by the pipeline itself.
const (
	placeholderOpen  = "\uE000" // U+E000: Private Use Area start
	placeholderClose = "\uE001" // U+E001: Private Use Area end
)

// placeholderKind tags a token with the side-table it indexes.
type placeholderKind byte

const (
	kindCodeBlock  placeholderKind = 'B'
	kindInlineCode placeholderKind = 'C'
	kindStrong     placeholderKind = 'S'
	kindEmphasis   placeholderKind = 'E'
)

// isPlaceholderRune reports whether r is one of the reserved delimiters.
func isPlaceholderRune(r rune) bool {
	return r == '\uE000' || r == '\uE001'
}

// placeholder returns the opaque token standing in for entry idx of kind.
func placeholder(kind placeholderKind, idx int) string {
	return placeholderOpen + string(rune(kind)) + strconv.Itoa(idx) + placeholderClose
}

// replacePlaceholders substitutes every token of the given kind with the
// result of resolve. When resolve reports false the token is kept verbatim.
func replacePlaceholders(s string, kind placeholderKind, resolve func(idx int) (string, bool)) string {
	prefix := placeholderOpen + string(rune(kind))
	if !strings.Contains(s, prefix) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for {
		start := strings.Index(s, prefix)
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}

		rest := s[start+len(prefix):]
		end := strings.Index(rest, placeholderClose)
		idx, ok := parseIndex(rest, end)
		if !ok {
			b.WriteString(s[:start+len(prefix)])
			s = rest
			continue
		}

		replacement, ok := resolve(idx)
		if !ok {
			replacement = s[start : start+len(prefix)+end+len(placeholderClose)]
		}
		b.WriteString(s[:start])
		b.WriteString(replacement)
		s = rest[end+len(placeholderClose):]
	}
}

// parseIndex reads the decimal index in rest[:end].
func parseIndex(rest string, end int) (int, bool) {
	if end <= 0 {
		return 0, false
	}
	digits := rest[:end]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return idx, true
}
