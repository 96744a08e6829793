package pipeline

// FragmentRenderer converts markdown into an injectable HTML fragment.
type FragmentRenderer interface {
	Render(markdown string) string
}

// Renderer runs the conversion stages in order. It holds no per-call state
// and is safe for concurrent use once constructed.
type Renderer struct {
	highlighter Highlighter
}

// Compile-time interface check.
var _ FragmentRenderer = (*Renderer)(nil)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithHighlighter renders code block bodies through hl. A nil hl keeps
// plain escaping.
func WithHighlighter(hl Highlighter) RendererOption {
	return func(r *Renderer) {
		r.highlighter = hl
	}
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRenderer backs the package-level Render.
var defaultRenderer = NewRenderer()

// Render converts markdown with the default renderer.
func Render(markdown string) string {
	return defaultRenderer.Render(markdown)
}

// Render converts markdown into sanitized HTML. Every input yields output:
// malformed constructs degrade to escaped text and an unterminated fence is
// closed virtually, so any prefix of a stream renders.
//
// Stage order is significant. Code blocks leave the text before escaping and
// come back last, so nothing between those two steps can touch code.
func (r *Renderer) Render(markdown string) string {
	text := Preprocess(markdown)
	if text == "" {
		return ""
	}

	text = BalanceFences(text)
	text, blocks := extractCodeBlocks(text)

	text = escapeHTML(text)
	text = formatBlocks(text)
	text = applyInline(text)
	text = formatLinks(text)
	text = normalizeLineBreaks(text)

	text = restoreCodeBlocks(text, blocks, r.highlighter)
	return trimCodeBlockBreaks(text)
}
