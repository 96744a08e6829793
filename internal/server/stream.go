package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	streammd "github.com/alnah/go-streammd"
)

// Websocket timings. A model can pause for a while between tokens, so the
// idle window is generous.
const (
	streamIdleTimeout  = 10 * time.Minute
	streamWriteTimeout = 30 * time.Second
)

// Message types on /stream.
const (
	msgChunk = "chunk"
	msgReset = "reset"
	msgHTML  = "html"
	msgError = "error"
)

// newUpgrader accepts same-origin browsers, the listed origins, and
// clients that send no Origin header at all.
func newUpgrader(allowed []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if slices.Contains(allowed, origin) {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// streamInMessage is sent by the client.
type streamInMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// streamHTMLMessage carries the rendering of everything received so far.
type streamHTMLMessage struct {
	Type   string `json:"type"`
	HTML   string `json:"html"`
	Length int    `json:"length"`
}

// streamErrorMessage reports a rejected input message. The stream is left
// as it was.
type streamErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleStream keeps one Stream per connection. Each chunk is appended and
// the whole accumulated document is rendered and sent back.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("stream upgrade failed")
		return
	}
	defer conn.Close()

	// Unblock the read loop on shutdown.
	ctx := r.Context()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	conn.SetReadLimit(s.readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamIdleTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamIdleTimeout))
	})

	stream := s.conv.NewStream()
	log := s.log.With().Str("remote", r.RemoteAddr).Logger()
	log.Debug().Msg("stream opened")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Int("length", stream.Len()).Msg("stream closed")
				return
			}
			if ctx.Err() == nil {
				log.Debug().Err(err).Msg("stream read")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(streamIdleTimeout))

		out := handleStreamMessage(stream, raw)
		if err := writeWSJSON(conn, out); err != nil {
			log.Debug().Err(err).Msg("stream write")
			return
		}
	}
}

// handleStreamMessage applies one client message and builds the reply.
func handleStreamMessage(stream *streammd.Stream, raw []byte) any {
	var in streamInMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return streamErrorMessage{Type: msgError, Error: "invalid JSON: " + err.Error()}
	}

	switch in.Type {
	case msgChunk:
		if _, err := stream.WriteString(in.Text); err != nil {
			return streamErrorMessage{Type: msgError, Error: err.Error()}
		}
	case msgReset:
		stream.Reset()
	default:
		return streamErrorMessage{Type: msgError, Error: "expected type chunk or reset"}
	}

	return streamHTMLMessage{Type: msgHTML, HTML: stream.HTML(), Length: stream.Len()}
}

func writeWSJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(v)
}
