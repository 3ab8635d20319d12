// internal/server/ws.go
package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/jason-s-yu/gangoffour/service/internal/analysis"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	MsgAnalyze        MessageType = "analyze"         // Client: analyze Request.
	MsgPing           MessageType = "ping"            // Client: liveness probe.
	MsgAnalysisResult MessageType = "analysis_result" // Server: Result for the request with the same ID.
	MsgAnalysisError  MessageType = "analysis_error"  // Server: the request with the same ID failed.
	MsgPong           MessageType = "pong"            // Server: reply to ping.
)

const (
	wsReadLimit    = 64 << 10
	wsWriteTimeout = 5 * time.Second
)

// Message is the envelope for every websocket frame in both directions.
type Message struct {
	Type    MessageType       `json:"type"`
	ID      string            `json:"id,omitempty"` // echoed back on the reply
	Request *analysis.Request `json:"request,omitempty"`
	Result  *analysis.Result  `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// originPatterns converts allowed origins into the host patterns the
// websocket handshake checks.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}
	return out
}

// handleWS serves one analysis request per inbound message until the peer
// closes the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.origins),
	})
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}
	defer c.CloseNow()
	c.SetReadLimit(wsReadLimit)

	ctx := r.Context()
	log := s.log.WithField("remote", r.RemoteAddr)
	log.Debug("websocket connected")

	for {
		var in Message
		if err := wsjson.Read(ctx, c, &in); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				log.Debug("websocket closed by peer")
			default:
				if !errors.Is(err, context.Canceled) {
					log.WithError(err).Debug("websocket read failed")
				}
			}
			return
		}

		out := s.reply(ctx, in)
		writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err := wsjson.Write(writeCtx, c, out)
		cancel()
		if err != nil {
			log.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

func (s *Server) reply(ctx context.Context, in Message) Message {
	out := Message{ID: in.ID}
	switch in.Type {
	case MsgPing:
		out.Type = MsgPong
	case MsgAnalyze:
		if in.Request == nil {
			out.Type = MsgAnalysisError
			out.Error = "missing request"
			return out
		}
		res, err := s.analyzer.Analyze(ctx, *in.Request)
		if err != nil {
			out.Type = MsgAnalysisError
			out.Error = err.Error()
			if !analysis.IsClientError(err) {
				s.log.WithError(err).Error("analysis failed")
				out.Error = http.StatusText(http.StatusInternalServerError)
			}
			return out
		}
		out.Type = MsgAnalysisResult
		out.Result = res
	default:
		out.Type = MsgAnalysisError
		out.Error = "unknown message type " + string(in.Type)
	}
	return out
}
