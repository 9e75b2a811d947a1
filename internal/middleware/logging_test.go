package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samphillips38/bloom-web-sub001/internal/metrics"
)

func TestRequestLoggerRouteLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequestLogger(logger, m)(mux)

	// Distinct course IDs share one route, so they must share one series.
	for _, path := range []string{"/courses/alpha", "/courses/beta", "/courses/gamma"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	}

	if n := testutil.CollectAndCount(m.RequestDuration); n != 1 {
		t.Errorf("request duration series = %d, want 1", n)
	}
}

func TestRequestLoggerRouteLabelThroughAuth(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr, store := setupAuthTest(t)

	ls, err := store.Create("good-access", "refresh-1")
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /lessons/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// The auth middleware hands the mux a cloned request; the pattern it
	// matches must still reach the logger on the outside.
	handler := RequestLogger(logger, m)(RequireAuth(mgr)(mux))

	for _, path := range []string{"/lessons/l1", "/lessons/l2"} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ls.Token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", path, rec.Code)
		}
	}

	if n := testutil.CollectAndCount(m.RequestDuration); n != 1 {
		t.Errorf("request duration series = %d, want 1", n)
	}
}

func TestRequestLoggerUnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := RequestLogger(logger, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/whatever/123", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	route := ""
	for _, mf := range families {
		if mf.GetName() != "bloomweb_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" {
					route = label.GetValue()
				}
			}
		}
	}
	if route != "unmatched" {
		t.Errorf("route label = %q, want unmatched", route)
	}
}
