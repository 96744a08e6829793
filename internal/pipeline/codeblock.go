package pipeline

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// CodeBlock is a fenced code block pulled out of the text stream before any
// other formatting runs.
type CodeBlock struct {
	Language string // trimmed info string, may be empty
	Code     string // body without trailing blank lines
}

// copyIcon is the glyph inside the copy button.
const copyIcon = `<svg class="md-icon md-icon-copy" viewBox="0 0 24 24" width="16" height="16" aria-hidden="true"><path d="M16 1H4a2 2 0 0 0-2 2v12h2V3h12V1zm3 4H8a2 2 0 0 0-2 2v14a2 2 0 0 0 2 2h11a2 2 0 0 0 2-2V7a2 2 0 0 0-2-2zm0 16H8V7h11v14z"/></svg>`

var (
	// Language class is restricted to CSS-safe characters.
	unsafeClassChars = regexp.MustCompile(`[^a-z0-9_-]`)

	// Breaks left next to a restored block by the line-break pass.
	breakBeforeCodeBlock = regexp.MustCompile(`<br>\s*(<div class="md-codeblock">)`)
	breakAfterCodeBlock  = regexp.MustCompile(`(</code></pre></div>)\s*<br>`)

	// encodeURIComponent leaves !'()* unescaped and uses %20 for spaces.
	uriComponentFixups = strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
)

// extractCodeBlocks replaces every backtick-fenced block with a placeholder
// in a single left-to-right pass, so indices follow document order. Tilde
// fences are passed through untouched, together with their bodies.
func extractCodeBlocks(text string) (string, []CodeBlock) {
	if !strings.Contains(text, "```") {
		return text, nil
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var blocks []CodeBlock

	for i := 0; i < len(lines); i++ {
		f, ok := openingFence(lines[i])
		if !ok {
			out = append(out, lines[i])
			continue
		}

		end := closingLine(lines, i+1, f)
		if end < 0 {
			out = append(out, lines[i])
			continue
		}

		if f.char != '`' {
			out = append(out, lines[i:end+1]...)
			i = end
			continue
		}

		blocks = append(blocks, CodeBlock{
			Language: infoString(lines[i], f),
			Code:     strings.Join(trimTrailingBlankLines(lines[i+1:end]), "\n"),
		})
		out = append(out, placeholder(kindCodeBlock, len(blocks)-1))
		i = end
	}

	return strings.Join(out, "\n"), blocks
}

// closingLine returns the index of the first line at or after from that
// closes f, or -1.
func closingLine(lines []string, from int, f fence) int {
	for j := from; j < len(lines); j++ {
		if f.closedBy(lines[j]) {
			return j
		}
	}
	return -1
}

// infoString returns the language tag following the opening marker run.
func infoString(line string, f fence) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return strings.TrimSpace(trimmed[f.length:])
}

func trimTrailingBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// restoreCodeBlocks swaps code block placeholders for their final markup.
// Code is escaped here, independently of the main text, and keeps its raw
// newlines.
func restoreCodeBlocks(content string, blocks []CodeBlock, hl Highlighter) string {
	if len(blocks) == 0 {
		return content
	}
	return replacePlaceholders(content, kindCodeBlock, func(idx int) (string, bool) {
		if idx >= len(blocks) {
			return "", false
		}
		return renderCodeBlock(blocks[idx], hl), true
	})
}

// renderCodeBlock builds the header bar (language label, copy button) and
// the <pre><code> body. The copy payload is percent-encoded data, never
// script.
func renderCodeBlock(block CodeBlock, hl Highlighter) string {
	title := block.Language
	if title == "" {
		title = "code"
	}
	langClass := unsafeClassChars.ReplaceAllString(strings.ToLower(title), "")
	if langClass == "" {
		langClass = "code"
	}

	body, ok := "", false
	if hl != nil && block.Language != "" {
		body, ok = hl.Highlight(block.Code, block.Language)
	}
	if !ok {
		body = escapeHTML(block.Code)
	}

	var b strings.Builder
	b.Grow(len(block.Code)*2 + 768)
	b.WriteString(`<div class="md-codeblock"><div class="md-codeblock__header"><div class="md-codeblock__lang">`)
	b.WriteString(escapeHTML(title))
	b.WriteString(`</div><button type="button" class="md-codeblock__copy" aria-label="Copy code" title="Copy code" data-copy-code="`)
	b.WriteString(escapeAttr(encodeURIComponent(block.Code)))
	b.WriteString(`">`)
	b.WriteString(copyIcon)
	b.WriteString(`</button></div><pre class="md-codeblock__pre"><code class="md-codeblock__code language-`)
	b.WriteString(langClass)
	b.WriteString(`">`)
	b.WriteString(body)
	b.WriteString(`</code></pre></div>`)
	return b.String()
}

// encodeURIComponent percent-encodes s the way browsers' encodeURIComponent
// does, so the copy button can decode it with decodeURIComponent.
func encodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

// trimCodeBlockBreaks removes the single break the line-break pass leaves on
// each side of a restored code block.
func trimCodeBlockBreaks(content string) string {
	if !strings.Contains(content, `<div class="md-codeblock">`) {
		return content
	}
	content = breakBeforeCodeBlock.ReplaceAllString(content, "$1")
	return breakAfterCodeBlock.ReplaceAllString(content, "$1")
}
