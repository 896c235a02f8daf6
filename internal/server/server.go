package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/surajroboto/cookie-trac/internal/app"
	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/urlutil"
)

// Server is the HTTP + WebSocket API surface for running scans on demand.
// Jobs and reports are kept in memory only; report files still land in the
// configured output directory.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	scanner      *app.Scanner
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer creates a Server with its own Scanner and Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	scanner, err := app.NewScanner(cfg.AppConfig, nil, logger)
	if err != nil {
		return nil, err
	}

	orch := app.NewOrchestrator(cfg.AppConfig, scanner, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		scanner:      scanner,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/scans", s.optionsHandler("GET, POST"))
	r.Options("/scans/{scanID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/scans", s.optionsHandler("GET"))
	r.Options("/ws/scans/{scanID}", s.optionsHandler("GET"))

	// Scan jobs over REST
	r.Post("/scans", s.handleStartScan)
	r.Get("/scans", s.handleListScans)
	r.Get("/scans/{scanID}", s.handleGetScan)
	r.Delete("/scans/{scanID}", s.handleCancelScan)

	// WebSocket: start a scan and stream its job events, or attach to an
	// existing job by id
	r.Get("/ws/scans", s.handleScanWS)
	r.Get("/ws/scans/{scanID}", s.handleScanAttachWS)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the scanner's browser session.
func (s *Server) Close() {
	if s.scanner != nil {
		_ = s.scanner.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := urlutil.ValidateTarget(body.URL); err != nil {
		s.logger.Warn("rejecting scan target", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Detach from the request context so the job outlives the HTTP call.
	job, err := s.orchestrator.StartScanJob(context.Background(), body.URL)
	if err != nil {
		s.logger.Warn("starting scan job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("started scan job", logging.Field{Key: "job_id", Value: job.ID}, logging.Field{Key: "url", Value: body.URL})
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	s.logger.Info("listed scan jobs", logging.Field{Key: "count", Value: len(jobs)})
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	job := s.orchestrator.GetJob(scanID)
	if job == nil {
		s.logger.Warn("getting scan job: not found", logging.Field{Key: "job_id", Value: scanID})
		writeError(w, http.StatusNotFound, "scan not found")
		return
	}
	s.logger.Info("got scan job", logging.Field{Key: "job_id", Value: job.ID})
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	s.orchestrator.CancelJob(scanID)
	s.logger.Info("canceled scan job", logging.Field{Key: "job_id", Value: scanID})
	writeJSON(w, http.StatusNoContent, nil)
}

// WebSocket: ?url=... starts a scan and streams job events until done.
func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if err := urlutil.ValidateTarget(target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	job, err := s.orchestrator.StartScanJob(context.Background(), target)
	if err != nil {
		s.logger.Warn("starting scan job", logging.Field{Key: "error", Value: err.Error()})
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	s.logger.Info("started scan job", logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}

	// Events channel closed: send the final job state, report included.
	if final := s.orchestrator.GetJob(job.ID); final != nil {
		_ = conn.WriteJSON(final)
	}
}

// WebSocket: stream the events of a job started earlier via POST /scans.
// Detaching does not cancel the job; other observers may still be watching.
func (s *Server) handleScanAttachWS(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")
	job := s.orchestrator.GetJob(scanID)
	if job == nil {
		writeError(w, http.StatusNotFound, "scan not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	s.logger.Info("attached to scan job", logging.Field{Key: "job_id", Value: scanID})

	// Current state first, then the live events. For a finished job the
	// channel is already closed and the loop falls straight through.
	_ = conn.WriteJSON(job)
	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}

	if final := s.orchestrator.GetJob(scanID); final != nil {
		_ = conn.WriteJSON(final)
	}
}
