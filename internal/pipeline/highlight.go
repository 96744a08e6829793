package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle indicates the chroma style name is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// Highlighter renders code as escaped, class-annotated HTML for the body of
// a restored code block. It reports false when it cannot handle the
// language; the block then falls back to plain escaping.
type Highlighter interface {
	Highlight(code, language string) (string, bool)
}

// ChromaHighlighter highlights code with chroma, emitting CSS classes
// rather than inline styles so one stylesheet serves every block.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style
// (e.g. "github", "monokai").
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),           // CSS classes for smaller HTML and external stylesheet control
			chromahtml.PreventSurroundingPre(true), // the code block supplies its own <pre><code>
		),
	}, nil
}

// Highlight tokenises code with the lexer registered for language.
func (h *ChromaHighlighter) Highlight(code, language string) (string, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// WriteCSS writes the stylesheet for the classes Highlight emits.
func (h *ChromaHighlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// HighlightStyleNames lists the registered chroma style names, sorted.
func HighlightStyleNames() []string {
	return styles.Names()
}
