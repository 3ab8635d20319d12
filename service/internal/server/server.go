// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jason-s-yu/gangoffour/service/internal/analysis"
	"github.com/jason-s-yu/gangoffour/service/internal/auth"
	"github.com/jason-s-yu/gangoffour/service/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 10 * time.Second
)

// Analyzer evaluates analysis requests.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// Options configures a Server.
type Options struct {
	Analyzer       Analyzer
	Verifier       *auth.Verifier // nil disables authentication
	Logger         logrus.FieldLogger
	AllowedOrigins []string
}

// Server exposes the analyzer over HTTP and websockets.
type Server struct {
	analyzer Analyzer
	verifier *auth.Verifier
	log      logrus.FieldLogger
	origins  []string
	handler  http.Handler
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		analyzer: opts.Analyzer,
		verifier: opts.Verifier,
		log:      opts.Logger,
		origins:  opts.AllowedOrigins,
	}
	if s.verifier == nil {
		s.verifier = auth.NewVerifier("")
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("POST /v1/analyze", s.verifier.Middleware(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("GET /v1/ws", s.verifier.Middleware(http.HandlerFunc(s.handleWS)))

	s.handler = requestLogger(s.log, cors(s.origins, mux))
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.WithField("addr", ln.Addr().String()).Info("server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	res, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if analysis.IsClientError(err) {
			status = http.StatusBadRequest
		} else {
			s.log.WithError(err).Error("analysis failed")
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
