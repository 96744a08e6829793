// Package streammd converts markdown into sanitized HTML that is safe to
// inject into a page, and renders any prefix of a document while it is
// still being written.
//
// # Quick Start
//
// For one-off conversion with defaults:
//
//	html := streammd.MarkdownToHTML("# Hello\n\n**World**")
//
// For highlighting, standalone documents or size limits, create a
// Converter once and reuse it; it is safe for concurrent use:
//
//	conv, err := streammd.NewConverter(
//	    streammd.WithHighlighting("github"),
//	    streammd.WithStylesheet("dark"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, streammd.Input{
//	    Markdown:   content,
//	    Standalone: true,
//	})
//
// # Streaming
//
// A Stream buffers markdown chunks and renders the text received so far:
//
//	s := conv.NewStream()
//	for chunk := range chunks {
//	    s.WriteString(chunk)
//	    preview.Update(s.HTML())
//	}
//
// An open code fence renders as a finished block, so partial output never
// leaks raw markdown into the page.
//
// # Dialect
//
// The accepted markdown is a small, chat-oriented dialect: ATX headings
// (levels 1 to 4), "> " blockquotes, "- " and "* " bullet lists, pipe tables
// with alignment, "---" rules, fenced code blocks, inline code, bold,
// italics and links. Single newlines are hard breaks. Everything else,
// including raw HTML, is escaped.
//
// # Safety
//
// Output never contains author-controlled markup: text is escaped before any
// tag is produced, and links are emitted only for http, https, mailto and
// tel targets. Links open in a new tab with rel="noreferrer noopener".
//
// # Custom Assets
//
// Override built-in styles with a directory of CSS files:
//
//	conv, err := streammd.NewConverter(streammd.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	└── styles/
//	    └── custom.css
package streammd
