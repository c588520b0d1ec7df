// cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/valpere/RealtyScrapexter/internal/collect"
	"github.com/valpere/RealtyScrapexter/internal/dom"
	"github.com/valpere/RealtyScrapexter/internal/monitoring"
)

// maxSnapshotBytes bounds the accepted request body size
const maxSnapshotBytes = 20 << 20 // 20MB

// server handles snapshot extraction requests
type server struct {
	collector *collect.Collector
	metrics   *monitoring.MetricsManager
	logger    *log.Logger
	started   time.Time
}

// extractRequest is the body of the extraction endpoints
type extractRequest struct {
	HTML    string `json:"html"`
	BaseURL string `json:"base_url,omitempty"`
}

func newServer(logger *log.Logger) (*server, error) {
	metrics := monitoring.NewMetricsManager(monitoring.MetricsConfig{
		Subsystem: "server",
	})

	collector, err := collect.New(collect.Config{
		Observer: metrics,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}

	return &server{
		collector: collector,
		metrics:   metrics,
		logger:    logger,
		started:   time.Now(),
	}, nil
}

// routes assembles the HTTP router with its middleware
func (s *server) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.Handle("/metrics", s.metrics.MetricsHandler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/extract/listings", s.handleExtractListings).Methods("POST")
	api.HandleFunc("/extract/reviews", s.handleExtractReviews).Methods("POST")
	api.HandleFunc("/extract/agent", s.handleExtractAgent).Methods("POST")

	return rateLimitMiddleware(s.logRequests(r))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"timestamp": time.Now(),
	})
}

func (s *server) handleExtractListings(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.parseSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.collector.CollectListings(snapshot))
}

func (s *server) handleExtractReviews(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.parseSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.collector.CollectReviews(snapshot))
}

func (s *server) handleExtractAgent(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.parseSnapshot(w, r)
	if !ok {
		return
	}
	profile, meta := s.collector.ExtractAgentProfile(snapshot)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"agent":    profile,
		"metadata": meta,
	})
}

// parseSnapshot decodes the request body into a DOM snapshot. On
// failure it writes the error response and returns ok=false.
func (s *server) parseSnapshot(w http.ResponseWriter, r *http.Request) (*dom.Snapshot, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}
	if req.HTML == "" {
		writeError(w, http.StatusBadRequest, "html is required")
		return nil, false
	}

	snapshot, err := dom.NewSnapshot(req.HTML, req.BaseURL)
	if err != nil {
		s.metrics.RecordSnapshotError("parse")
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to parse snapshot: %v", err))
		return nil, false
	}

	s.metrics.RecordSnapshotProcessed("processed")
	s.metrics.RecordSnapshotSize("api", int64(len(req.HTML)))
	return snapshot, true
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func rateLimitMiddleware(next http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := log.New(os.Stderr, "[server] ", log.LstdFlags)

	srv, err := newServer(logger)
	if err != nil {
		logger.Fatalf("failed to initialize server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}
