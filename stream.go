package streammd

import (
	"fmt"
	"strings"
	"sync"
)

// Stream accumulates markdown as it arrives, e.g. token by token from a
// language model, and renders the text received so far on demand. Every
// prefix renders: an unterminated code fence is closed virtually and
// incomplete inline markers stay literal until their closer arrives.
//
// A Stream is safe for concurrent use.
type Stream struct {
	conv *Converter
	mu   sync.Mutex
	buf  strings.Builder
}

// Write appends p. It implements io.Writer. Writes that would push the
// buffer past the converter's input limit fail with ErrInputTooLarge and
// append nothing.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkGrowth(len(p)); err != nil {
		return 0, err
	}
	return s.buf.Write(p)
}

// WriteString appends chunk. It implements io.StringWriter.
func (s *Stream) WriteString(chunk string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkGrowth(len(chunk)); err != nil {
		return 0, err
	}
	return s.buf.WriteString(chunk)
}

// HTML renders the accumulated markdown.
func (s *Stream) HTML() string {
	return s.conv.Render(s.Markdown())
}

// Markdown returns the accumulated markdown.
func (s *Stream) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Len returns the accumulated markdown length in bytes.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// Reset discards the accumulated markdown.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
}

// checkGrowth must be called with s.mu held.
func (s *Stream) checkGrowth(n int) error {
	if limit := s.conv.cfg.maxInputSize; s.buf.Len()+n > limit {
		return fmt.Errorf("%w: stream would reach %d bytes (max %d)", ErrInputTooLarge, s.buf.Len()+n, limit)
	}
	return nil
}
