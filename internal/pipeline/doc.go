// Package pipeline implements the streaming-tolerant Markdown-to-HTML
// conversion.
//
// The conversion is a fixed sequence of text stages:
//   - preprocessing (reasoning spans, unusual spaces, line endings)
//   - fence balancing, so a half-streamed code block still renders
//   - code block extraction into a side table
//   - HTML escaping of everything else
//   - block formatting (headings, blockquotes, lists, tables, rules)
//   - inline formatting (code, strong, emphasis) and links
//   - line-break normalization
//   - code block restoration and cleanup
//
// Stages that must not see each other's output swap it for placeholder
// tokens delimited by Private Use Area runes, which preprocessing removes
// from the input. Output is a fragment; WrapDocument and CSSInjection turn
// it into a standalone page.
package pipeline
