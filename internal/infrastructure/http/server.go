// Package http provides the HTTP server infrastructure.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/usecases"
)

// Answerer resolves a user message to a reply.
type Answerer interface {
	Answer(ctx context.Context, message string) string
}

// Config holds server settings.
type Config struct {
	Addr             string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	GracefulShutdown time.Duration
}

// Server is the HTTP shell around the responder.
type Server struct {
	answers Answerer
	engines usecases.EngineProvider
	log     zerolog.Logger
	cfg     Config
}

// NewServer creates a new HTTP server.
func NewServer(answers Answerer, engines usecases.EngineProvider, log zerolog.Logger, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.GracefulShutdown <= 0 {
		cfg.GracefulShutdown = 5 * time.Second
	}
	return &Server{
		answers: answers,
		engines: engines,
		log:     log.With().Str("component", "http").Logger(),
		cfg:     cfg,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.Get("/ping", s.handlePing)
	r.Get("/ready", s.handleReady)
	r.Post("/chat", s.handleChat)

	return r
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.log.Info().Str("addr", s.cfg.Addr).Msg("server starting")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GracefulShutdown)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("server stopped")
	return nil
}

type chatRequest struct {
	Message *string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type readyResponse struct {
	Status     string `json:"status"`
	Entries    int    `json:"entries"`
	Vocabulary int    `json:"vocabulary"`
	Generation string `json:"generation"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "alive"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	eng := s.engines.Current()
	status := "not_ready"
	if eng.Ready() {
		status = "ready"
	}
	writeJSON(w, readyResponse{
		Status:     status,
		Entries:    eng.Size(),
		Vocabulary: eng.VocabularySize(),
		Generation: eng.Generation(),
	})
}

// handleChat answers {"message": ...}. A missing message is an empty
// query; a body that is not a JSON object or a message that is not a
// string is a fault.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req *chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		s.log.Warn().Err(err).Str("request_id", chimiddleware.GetReqID(r.Context())).Msg("undecodable chat request")
		writeJSON(w, chatResponse{Reply: matching.InternalErrorReply})
		return
	}

	message := ""
	if req.Message != nil {
		message = *req.Message
	}
	writeJSON(w, chatResponse{Reply: s.answers.Answer(r.Context(), message)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// recoverMiddleware turns a panic into the generic reply with status 200.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("recovered from panic")
			writeJSON(w, chatResponse{Reply: matching.InternalErrorReply})
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
