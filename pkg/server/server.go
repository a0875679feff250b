// Package server provides the HTTP front door for the cost advisor:
// a file-upload analysis endpoint, health checks, and metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/cloudsaver/billing-advisor/pkg/analyzer"
	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/ingest"
)

// maxUploadBytes bounds the multipart body; billing exports are small
const maxUploadBytes = 25 << 20

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	analyzer   *analyzer.Analyzer
	cfg        *config.Config
	metrics    *Metrics
}

// NewServer creates the API server around an analyzer
func NewServer(a *analyzer.Analyzer, cfg *config.Config) *Server {
	return &Server{
		analyzer: a,
		cfg:      cfg,
		metrics:  NewMetrics(),
	}
}

// Router builds the chi router with middleware and routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return r
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.ListenAddr).Msg("cost advisor server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Cloud Cost Analyzer Backend is running.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart CSV upload and returns the analysis
// summary. Validation failures are 400s; an analysis failure is a 500 with
// the error message, mirroring the behavior callers already rely on.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing file upload: %v", err))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "Invalid file type. Please upload a CSV file.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}
	log.Info().Str("filename", header.Filename).Int("bytes", len(data)).Msg("received billing export")

	start := time.Now()
	summary, err := s.analyzer.Analyze(r.Context(), ingest.DecodeText(data))
	s.metrics.analysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.analysisFailures.Inc()
		log.Error().Err(err).Str("filename", header.Filename).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	s.metrics.analysesTotal.Inc()
	s.metrics.findingsTotal.Add(float64(summary.NumFindings))
	s.metrics.savingsDollars.Add(summary.TotalEstimatedMonthlySavings)

	writeJSON(w, http.StatusOK, summary)
}

// requestLogger logs each request with zerolog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
