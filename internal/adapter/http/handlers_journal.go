package adapthttp

import (
	"fmt"
	"net/http"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// cached returns the value stored under key, computing and storing it on a
// miss. Errors are not cached.
func (s *Server) cached(key string, compute func() (any, error)) (any, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

// serveCached answers a GET with the cached value of key.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string, compute func() (any, error)) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	v, err := s.cached(key, compute)
	if err != nil {
		s.logger.Error("aggregate failed", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "stats", func() (any, error) {
		return s.journal.Stats(r.Context())
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "dashboard", func() (any, error) {
		sum, err := s.journal.Dashboard(r.Context())
		if err != nil {
			return nil, err
		}
		trend, err := s.journal.Trend(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{"summary": sum, "trend": trend}, nil
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "streak", func() (any, error) {
		info, err := s.journal.Streak(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"days":    info.Days,
			"badge":   info.Badge,
			"label":   info.Badge.Label(),
			"goal":    info.Goal,
			"percent": info.Percent(),
		}, nil
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", s.historyLimit)
	s.serveCached(w, r, fmt.Sprintf("history:%d", limit), func() (any, error) {
		items, err := s.journal.History(r.Context(), limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"items": items}, nil
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "trend", func() (any, error) {
		trend, err := s.journal.Trend(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{"days": trend}, nil
	})
}
