package adapthttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	adapthttp "vibematrix/internal/adapter/http"
	"vibematrix/internal/adapter/jsonfile"
	"vibematrix/internal/adapter/memory"
	"vibematrix/internal/app"
	"vibematrix/internal/domain"
)

func newTestServer(t *testing.T, repo domain.MoodRepository) (*httptest.Server, *adapthttp.Server) {
	t.Helper()
	journal := app.NewJournalService(repo, app.SystemClock{}, nil, zap.NewNop())
	srv := adapthttp.New(journal, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, srv
}

func seed(t *testing.T, repo domain.MoodRepository, emojis ...string) {
	t.Helper()
	for _, e := range emojis {
		if _, err := repo.Append(context.Background(), domain.MoodInput{Name: e + " Mood", Emoji: e}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, memory.New())

	body := getJSON(t, ts.URL+"/api/health")
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestStats(t *testing.T) {
	repo := memory.New()
	seed(t, repo, "😎", "😎", "😡")
	ts, _ := newTestServer(t, repo)

	body := getJSON(t, ts.URL+"/api/stats")
	if body["total"] != float64(3) {
		t.Fatalf("expected total=3, got %v", body["total"])
	}
	top := body["mostUsed"].(map[string]any)
	if top["key"] != "😎" || top["count"] != float64(2) {
		t.Fatalf("unexpected mostUsed %v", top)
	}
	counts := body["counts"].([]any)
	if len(counts) != 2 {
		t.Fatalf("expected 2 counts, got %d", len(counts))
	}
}

func TestDashboardEmpty(t *testing.T) {
	ts, _ := newTestServer(t, memory.New())

	body := getJSON(t, ts.URL+"/api/dashboard")
	sum := body["summary"].(map[string]any)
	if sum["total"] != float64(0) || sum["avgEnergy"] != float64(0) {
		t.Fatalf("expected zero summary, got %v", sum)
	}
	if top := sum["mostUsed"].(map[string]any); top["key"] != app.NoMood {
		t.Fatalf("expected placeholder most used, got %v", top)
	}
	if trend := body["trend"].([]any); len(trend) != 0 {
		t.Fatalf("expected empty trend, got %v", trend)
	}
}

func TestStreak(t *testing.T) {
	repo := memory.New()
	seed(t, repo, "😊")
	ts, _ := newTestServer(t, repo)

	body := getJSON(t, ts.URL+"/api/streak")
	if body["days"] != float64(1) {
		t.Fatalf("expected days=1, got %v", body["days"])
	}
	if body["badge"] != string(app.BadgeNew) || body["goal"] != float64(3) {
		t.Fatalf("unexpected streak %v", body)
	}
}

func TestHistoryLimit(t *testing.T) {
	repo := memory.New()
	seed(t, repo, "😊", "😎", "😡", "😴")
	ts, _ := newTestServer(t, repo)

	tests := []struct {
		query string
		want  int
	}{
		{"", 4},
		{"?limit=2", 2},
		{"?limit=0", 4},
		{"?limit=abc", 4},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			body := getJSON(t, ts.URL+"/api/history"+tc.query)
			items := body["items"].([]any)
			if len(items) != tc.want {
				t.Fatalf("expected %d items, got %d", tc.want, len(items))
			}
		})
	}
}

func TestCacheInvalidate(t *testing.T) {
	repo := memory.New()
	seed(t, repo, "😊")
	ts, srv := newTestServer(t, repo)

	if body := getJSON(t, ts.URL+"/api/stats"); body["total"] != float64(1) {
		t.Fatalf("expected total=1, got %v", body["total"])
	}
	seed(t, repo, "😎")
	if body := getJSON(t, ts.URL+"/api/stats"); body["total"] != float64(1) {
		t.Fatalf("expected cached total=1, got %v", body["total"])
	}

	srv.Invalidate()
	if body := getJSON(t, ts.URL+"/api/stats"); body["total"] != float64(2) {
		t.Fatalf("expected total=2 after invalidate, got %v", body["total"])
	}
}

func TestWatchFlushesOnWrite(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.json")
	store := jsonfile.New(logPath, filepath.Join(dir, "schedule.json"), zap.NewNop())
	store.EnsureFiles()
	ts, srv := newTestServer(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Watch(ctx, logPath) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(200 * time.Millisecond)

	if body := getJSON(t, ts.URL+"/api/stats"); body["total"] != float64(0) {
		t.Fatalf("expected empty stats, got %v", body["total"])
	}
	seed(t, store, "😊")

	deadline := time.Now().Add(5 * time.Second)
	for {
		body := getJSON(t, ts.URL+"/api/stats")
		if body["total"] == float64(1) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("cache was not flushed after write, total=%v", body["total"])
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, memory.New())

	for _, path := range []string{"/api/stats", "/api/dashboard", "/api/streak", "/api/history", "/api/trend"} {
		t.Run(path, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, ts.URL+path, nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", resp.StatusCode)
			}
		})
	}
}
