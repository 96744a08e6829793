package streammd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-streammd/internal/assets"
	"github.com/alnah/go-streammd/internal/fileutil"
	"github.com/alnah/go-streammd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.FragmentRenderer = (*pipeline.Renderer)(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ AssetLoader               = (*assetLoaderAdapter)(nil)
)

// Converter renders markdown into sanitized HTML fragments or standalone
// documents. It is immutable after NewConverter and safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader // internal loader
	publicAssetLoader AssetLoader        // public loader (from WithAssetLoader)
	renderer          pipeline.FragmentRenderer
	cssInjector       pipeline.CSSInjector
	styleCSS          string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithHighlighting, WithStylesheet).
// Returns error if the stylesheet cannot be loaded or the highlight style is
// unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{maxInputSize: DefaultMaxInputSize},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface)
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	var rendererOpts []pipeline.RendererOption
	var highlightCSS string
	if c.cfg.highlightStyle != "" {
		hl, err := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, wrapError(ErrUnknownHighlightStyle, err)
		}
		var buf strings.Builder
		if err := hl.WriteCSS(&buf); err != nil {
			return nil, fmt.Errorf("generating highlight CSS: %w", err)
		}
		highlightCSS = buf.String()
		rendererOpts = append(rendererOpts, pipeline.WithHighlighter(hl))
	}
	c.renderer = pipeline.NewRenderer(rendererOpts...)

	style, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}
	c.styleCSS = joinCSS(style, highlightCSS)

	return c, nil
}

// Render converts markdown into a sanitized HTML fragment. It never fails:
// malformed markdown degrades to escaped text.
func (c *Converter) Render(markdown string) string {
	return c.renderer.Render(markdown)
}

// Convert renders input and returns the result. Fragments carry only
// Input.CSS as a leading <style> block; standalone documents carry StyleCSS
// followed by Input.CSS.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	htmlContent := c.renderer.Render(input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	cssContent := input.CSS
	if input.Standalone {
		title := input.Title
		if title == "" {
			title = c.cfg.title
		}
		htmlContent = pipeline.WrapDocument(htmlContent, title)
		cssContent = joinCSS(c.styleCSS, input.CSS)
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &ConvertResult{HTML: []byte(htmlContent)}, nil
}

// StyleCSS returns the resolved stylesheet: the selected style followed by
// the highlight theme classes when highlighting is enabled.
func (c *Converter) StyleCSS() string {
	return c.styleCSS
}

// NewStream returns an empty Stream rendering through c.
func (c *Converter) NewStream() *Stream {
	return &Stream{conv: c}
}

// resolveStyle resolves the style input (name or path) to CSS content.
// Called during NewConverter after options are applied and the asset loader
// is configured.
func (c *Converter) resolveStyle() (string, error) {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	return css, nil
}

// validateInput enforces the size limit. Markdown content itself is never
// rejected: every string, including the empty one, renders.
func (c *Converter) validateInput(input Input) error {
	if n := len(input.Markdown); n > c.cfg.maxInputSize {
		return fmt.Errorf("%w: markdown is %d bytes (max %d)", ErrInputTooLarge, n, c.cfg.maxInputSize)
	}
	if n := len(input.CSS); n > c.cfg.maxInputSize {
		return fmt.Errorf("%w: CSS is %d bytes (max %d)", ErrInputTooLarge, n, c.cfg.maxInputSize)
	}
	return nil
}

// joinCSS concatenates non-empty stylesheets, one per line.
func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// MarkdownToHTML converts markdown with the default configuration (no
// highlighting). It is the package-level equivalent of Converter.Render.
func MarkdownToHTML(markdown string) string {
	return pipeline.Render(markdown)
}
