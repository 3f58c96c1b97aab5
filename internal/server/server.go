// Package server is the remote generation service: it accepts a UI
// description on POST /generate and answers with the model's raw code blob.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aiupstart.com/snapcode/internal/llm"
	"aiupstart.com/snapcode/internal/metrics"
	"aiupstart.com/snapcode/internal/model"
	"aiupstart.com/snapcode/internal/utils"
)

const maxRequestBytes = 1 << 20

type Server struct {
	llmClient      llm.LLMClient
	allowedOrigins []string
}

// New returns a Server backed by llmClient. A nil or empty origins list uses
// DefaultAllowedOrigins.
func New(llmClient llm.LLMClient, origins []string) *Server {
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	return &Server{llmClient: llmClient, allowedOrigins: origins}
}

// Handler returns the full HTTP handler, CORS and request IDs included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.Handle("GET /metrics", metrics.Handler())
	return withRequestID(withCORS(s.allowedOrigins, mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info().Str("module", "server").Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	utils.Logger.Info().Str("module", "server").Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.RootResponse{
		Message:   "SnapCode API",
		Endpoints: []string{"POST /generate"},
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.GenerateRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		metrics.GenerateLatencySeconds.Observe(time.Since(start).Seconds())
	}()

	log := utils.Logger.With().Str("module", "server").Str("request_id", w.Header().Get(requestIDHeader)).Logger()

	var req model.GenerateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		status = http.StatusBadRequest
		log.Warn().Err(err).Msg("rejecting malformed request body")
		writeJSON(w, status, model.ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		status = http.StatusBadRequest
		writeJSON(w, status, model.ErrorResponse{Detail: "description must not be empty"})
		return
	}

	code, err := s.llmClient.Generate(r.Context(), description)
	if err != nil {
		var detail string
		status, detail = providerFailure(err)
		log.Error().Err(err).Int("status", status).Msg("generation failed")
		writeJSON(w, status, model.ErrorResponse{Detail: detail})
		return
	}

	metrics.GeneratedBytesTotal.Add(float64(len(code)))
	log.Info().Int("bytes", len(code)).Dur("elapsed", time.Since(start)).Msg("generation complete")
	writeJSON(w, status, model.GenerateResponse{Code: &code})
}

const requestIDHeader = "X-Request-ID"

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error().Err(err).Str("module", "server").Msg("writing response")
	}
}
