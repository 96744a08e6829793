// Package assets provides the stylesheets for rendered markdown.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, dark), which cover
// every class the converter emits: md-codeblock, md-table, md-link and the
// md-align-* helpers.
//
// AssetResolver is the loader used by the converter and the preview server.
// It tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when the style is not found there.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
