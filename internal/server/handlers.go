package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	streammd "github.com/alnah/go-streammd"
)

// handleRender renders the request body. ?standalone=1 returns a complete
// document instead of a fragment.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.readLimit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "body exceeds read limit")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	result, err := s.conv.Convert(r.Context(), streammd.Input{
		Markdown:   string(body),
		Standalone: isTruthy(r.URL.Query().Get("standalone")),
		Title:      r.URL.Query().Get("title"),
	})
	if err != nil {
		if errors.Is(err, streammd.ErrInputTooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("render failed")
		writeJSONError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(result.HTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStyle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = io.WriteString(w, s.conv.StyleCSS())
}

// isTruthy accepts the query spellings browsers and curl users reach for.
func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
