package streammd

// DefaultMaxInputSize caps the markdown accepted by Convert and Stream (8MB).
const DefaultMaxInputSize = 8 << 20

// Input contains conversion parameters.
type Input struct {
	Markdown   string // Markdown content, possibly a partial stream prefix
	Standalone bool   // Wrap the fragment in an HTML5 document with the stylesheet
	CSS        string // Extra CSS, applied after the converter stylesheet (optional)
	Title      string // Standalone document title (optional, overrides WithDocumentTitle)
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML []byte // Fragment, or a complete document when Input.Standalone is set
}
