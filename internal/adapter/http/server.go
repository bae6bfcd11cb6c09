// Package adapthttp serves a read-only JSON view of the journal.
package adapthttp

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"vibematrix/internal/app"
)

const (
	cacheTTL     = time.Minute
	cacheCleanup = 5 * time.Minute
)

// Server is the driving HTTP adapter that routes requests to the journal
// service. Aggregates are cached until the log changes or the TTL expires.
type Server struct {
	journal      *app.JournalService
	cache        *cache.Cache
	logger       *zap.Logger
	historyLimit int
}

// New creates a Server wired to the given journal service.
func New(journal *app.JournalService, logger *zap.Logger) *Server {
	return &Server{
		journal:      journal,
		cache:        cache.New(cacheTTL, cacheCleanup),
		logger:       logger,
		historyLimit: 10,
	}
}

// WithHistoryLimit sets the default page size of /api/history.
func (s *Server) WithHistoryLimit(n int) *Server {
	if n > 0 {
		s.historyLimit = n
	}
	return s
}

// Invalidate drops every cached aggregate.
func (s *Server) Invalidate() {
	s.cache.Flush()
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/stats", s.handleStats)
	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/streak", s.handleStreak)
	api.HandleFunc("/history", s.handleHistory)
	api.HandleFunc("/trend", s.handleTrend)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
