package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/database"
	"github.com/Xavierhuang/ScheduleShare/internal/extractor"
	"github.com/Xavierhuang/ScheduleShare/internal/gcal"
	"github.com/Xavierhuang/ScheduleShare/internal/planner"
)

type Server struct {
	db         *database.DB
	extractor  *extractor.Extractor
	planner    *planner.Planner
	gcalClient *gcal.Client
	loc        *time.Location
	httpSrv    *http.Server
	port       int
}

// Config holds everything the server needs. GCalClient may be nil; sync
// endpoints then report the calendar as not configured.
type Config struct {
	DB         *database.DB
	Extractor  *extractor.Extractor
	Planner    *planner.Planner
	GCalClient *gcal.Client
	Location   *time.Location
	Port       int
}

func New(cfg Config) *Server {
	s := &Server{
		db:         cfg.DB,
		extractor:  cfg.Extractor,
		planner:    cfg.Planner,
		gcalClient: cfg.GCalClient,
		loc:        cfg.Location,
		port:       cfg.Port,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // pipeline calls wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Extraction and route-planning pipelines
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/route", s.handleRoute)

	// Event store
	mux.HandleFunc("GET /api/events", s.handleListEvents)
	mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	mux.HandleFunc("GET /api/events/day", s.handleListEventsForDay)
	mux.HandleFunc("GET /api/events/{id}", s.handleGetEvent)
	mux.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	// Google Calendar sync and OAuth flow
	mux.HandleFunc("POST /api/events/{id}/sync", s.handleSyncEvent)
	mux.HandleFunc("GET /api/auth/google/url", s.handleAuthURL)
	mux.HandleFunc("POST /api/auth/google/callback", s.handleAuthCallback)
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	fmt.Printf("HTTP server listening on port %d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers to allow mobile app requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
