package pipeline

import (
	"strings"
	"unicode"
)

// minFenceLength is the shortest marker run that opens a fence.
const minFenceLength = 3

// fence is an open fenced code block: marker character and run length.
type fence struct {
	char   byte // '`' or '~'
	length int
}

// openingFence reports the fence a line opens: optional indentation, then
// three or more identical backticks or tildes, then anything.
func openingFence(line string) (fence, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if len(trimmed) < minFenceLength {
		return fence{}, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return fence{}, false
	}
	n := markerRun(trimmed, c)
	if n < minFenceLength {
		return fence{}, false
	}
	return fence{char: c, length: n}, true
}

// closedBy reports whether line closes f: the same character repeated at
// least f.length times, optionally surrounded by whitespace, nothing else.
func (f fence) closedBy(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < f.length {
		return false
	}
	return markerRun(trimmed, f.char) == len(trimmed)
}

// marker renders the fence line that closes f.
func (f fence) marker() string {
	return strings.Repeat(string(f.char), f.length)
}

// markerRun counts the leading run of c in s.
func markerRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// BalanceFences virtually closes a fenced code block left open at the end
// of md, so a block still being streamed renders as a complete block instead
// of leaking fence markers into the text path. Balanced input is returned
// unchanged, which also makes the function idempotent.
func BalanceFences(md string) string {
	open, ok := unclosedFence(md)
	if !ok {
		return md
	}
	if strings.HasSuffix(md, "\n") {
		return md + open.marker()
	}
	return md + "\n" + open.marker()
}

// unclosedFence scans md line by line and returns the fence still open at
// the end, if any. Only one fence can be open at a time.
func unclosedFence(md string) (fence, bool) {
	var (
		open   fence
		inside bool
	)
	for _, line := range strings.Split(md, "\n") {
		if !inside {
			open, inside = openingFence(line)
			continue
		}
		if open.closedBy(line) {
			inside = false
		}
	}
	return open, inside
}
