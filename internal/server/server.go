package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Registrar registers uploaded candidates.
type Registrar interface {
	Register(ctx context.Context, req *types.UploadCandidateRequest) (*db.Candidate, error)
}

// Evaluator runs the evaluation pipeline for one candidate.
type Evaluator interface {
	Run(ctx context.Context, candidateID, jobID string) *pipeline.State
}

// RankCalculator recomputes a candidate's final rank outside the pipeline.
type RankCalculator interface {
	Rerank(ctx context.Context, candidateID string, overallScore, fraudScore int) int
}

// CandidateStore is the persistence subset the handlers read and write.
type CandidateStore interface {
	GetCandidate(ctx context.Context, candidateID string) (*db.Candidate, error)
	SaveCandidateProfile(ctx context.Context, candidateID, rawText string, profile *types.CandidateProfile) error
	GetAuditTrail(ctx context.Context, candidateID string) ([]db.AuditEntry, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	registrar  Registrar
	evaluator  Evaluator
	reranker   RankCalculator
	store      CandidateStore
	logger     *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port int
}

// Deps holds the collaborators the server routes requests to.
type Deps struct {
	Registrar Registrar
	Evaluator Evaluator
	Reranker  RankCalculator
	Store     CandidateStore
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		registrar: deps.Registrar,
		evaluator: deps.Evaluator,
		reranker:  deps.Reranker,
		store:     deps.Store,
		logger:    logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.Routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // evaluation runs synchronously
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Routes builds the request mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /candidates", s.handleUploadCandidate)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("POST /candidates/{id}/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /candidates/{id}/rerank", s.handleRerank)
	mux.HandleFunc("GET /candidates/{id}/audit", s.handleAuditTrail)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
