package streammd

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	highlightStyle string
	styleInput     string // name or file path
	assetPath      string
	title          string
	maxInputSize   int
}

// WithHighlighting enables syntax highlighting of fenced code blocks with the
// named chroma style (e.g. "github", "monokai"). The style's CSS is appended
// to StyleCSS. An empty style leaves highlighting off.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithStylesheet selects the stylesheet used for standalone documents.
// A value containing a path separator is read from disk; anything else is a
// style name resolved through the asset loader.
func WithStylesheet(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPath
	}
}

// WithAssetPath loads styles from dir/styles/{name}.css, falling back to the
// embedded styles.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader for styles.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithDocumentTitle sets the default <title> of standalone documents.
func WithDocumentTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithMaxInputSize overrides DefaultMaxInputSize.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxInputSize(n int) Option {
	if n <= 0 {
		panic("streammd: WithMaxInputSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxInputSize = n
	}
}
