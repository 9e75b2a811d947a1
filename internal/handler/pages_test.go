package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samphillips38/bloom-web-sub001/internal/api"
	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/model"
	"github.com/samphillips38/bloom-web-sub001/internal/session"
)

// countingClient implements session.Client and counts stats fetches.
type countingClient struct {
	mu         sync.Mutex
	statsCalls int
	stats      *model.UserStats
}

func (c *countingClient) Login(context.Context, string, string) (*api.AuthResult, error) {
	return nil, nil
}

func (c *countingClient) Register(context.Context, string, string, string) (*api.AuthResult, error) {
	return nil, nil
}

func (c *countingClient) GoogleLogin(context.Context, string) (*api.AuthResult, error) {
	return nil, nil
}

func (c *countingClient) AppleLogin(context.Context, string, string) (*api.AuthResult, error) {
	return nil, nil
}

func (c *countingClient) Logout(context.Context, string) error { return nil }

func (c *countingClient) RefreshToken(context.Context, string) (*api.TokenPair, error) {
	return nil, nil
}

func (c *countingClient) GetProfile(context.Context, string) (*model.User, error) {
	return &model.User{ID: "u1"}, nil
}

func (c *countingClient) GetUserStats(context.Context, string) (*model.UserStats, error) {
	c.mu.Lock()
	c.statsCalls++
	c.mu.Unlock()
	return c.stats, nil
}

func (c *countingClient) SetDailyGoal(context.Context, string, int) error { return nil }

func (c *countingClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsCalls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPageHandler(t *testing.T, client *api.Client, mgr *session.Manager) *PageHandler {
	t.Helper()
	return &PageHandler{
		client:    client,
		mgr:       mgr,
		templates: parseTemplates("../../web/templates/*.html"),
		logger:    discardLogger(),
	}
}

func authedRequest(method, target string, sess *session.Session) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(auth.WithSession(req.Context(), sess))
}

func TestEnergyPartialFullHeartsNeverRefreshes(t *testing.T) {
	client := &countingClient{stats: &model.UserStats{Energy: 5, EnergyMax: 5}}
	mgr := session.NewManager(client, nil, discardLogger())
	h := testPageHandler(t, nil, mgr)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		Stats:       &model.UserStats{Energy: 5, EnergyMax: 5, MSUntilNextEnergyRefill: 0},
		StatsState:  session.StatsLoaded,
		StatsAt:     time.Now(),
		AccessToken: "access-1",
	}

	// Full hearts: the snapshot reports no pending refill, so the header
	// renders with deadline 0. Every subsequent tick must stay local.
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.EnergyPartial(rec, authedRequest("GET", "/partials/energy?deadline=0", sess))
		if rec.Code != http.StatusOK {
			t.Fatalf("tick %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	if n := client.calls(); n != 0 {
		t.Errorf("stats fetched %d times across full-hearts ticks, want 0", n)
	}
}

func TestEnergyPartialElapsedDeadlineRefreshesOnce(t *testing.T) {
	client := &countingClient{stats: &model.UserStats{Energy: 5, EnergyMax: 5, MSUntilNextEnergyRefill: 0}}
	mgr := session.NewManager(client, nil, discardLogger())
	h := testPageHandler(t, nil, mgr)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		Stats:       &model.UserStats{Energy: 4, EnergyMax: 5, MSUntilNextEnergyRefill: 1000},
		StatsState:  session.StatsLoaded,
		StatsAt:     time.Now().Add(-time.Minute),
		AccessToken: "access-1",
	}

	// A countdown that just elapsed reseeds once; the refreshed snapshot
	// has full hearts, so the response carries deadline 0 and stops the
	// poll.
	elapsed := time.Now().Add(-time.Second).UnixMilli()
	rec := httptest.NewRecorder()
	h.EnergyPartial(rec, authedRequest("GET", "/partials/energy?deadline="+strconv.FormatInt(elapsed, 10), sess))

	if n := client.calls(); n != 1 {
		t.Errorf("stats fetched %d times for an elapsed countdown, want 1", n)
	}
	body := rec.Body.String()
	if strings.Contains(body, "hx-get") {
		t.Error("full-hearts response still carries a poll attribute")
	}
}

func TestEnergyPartialRunningCountdownStaysLocal(t *testing.T) {
	client := &countingClient{}
	mgr := session.NewManager(client, nil, discardLogger())
	h := testPageHandler(t, nil, mgr)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		Stats:       &model.UserStats{Energy: 3, EnergyMax: 5, MSUntilNextEnergyRefill: 600_000},
		StatsState:  session.StatsLoaded,
		StatsAt:     time.Now(),
		AccessToken: "access-1",
	}

	future := time.Now().Add(10 * time.Minute).UnixMilli()
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.EnergyPartial(rec, authedRequest("GET", "/partials/energy?deadline="+strconv.FormatInt(future, 10), sess))
		if !strings.Contains(rec.Body.String(), "hx-get") {
			t.Fatalf("tick %d: running countdown lost its poll attribute", i+1)
		}
	}

	if n := client.calls(); n != 0 {
		t.Errorf("stats fetched %d times while counting down, want 0", n)
	}
}

func TestCoursePageUpstreamFailureRendersRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, discardLogger(), nil)
	h := testPageHandler(t, client, nil)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		AccessToken: "access-1",
	}

	rec := httptest.NewRecorder()
	req := authedRequest("GET", "/courses/c1", sess)
	req.SetPathValue("id", "c1")
	h.CoursePage(rec, req)

	if rec.Code == http.StatusNotFound {
		t.Fatal("upstream failure rendered as 404")
	}
	if !strings.Contains(rec.Body.String(), "try again") {
		t.Errorf("body does not offer a retry: %q", rec.Body.String())
	}
}

func TestCoursePageMissingCourseIs404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no such course"})
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, discardLogger(), nil)
	h := testPageHandler(t, client, nil)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		AccessToken: "access-1",
	}

	rec := httptest.NewRecorder()
	req := authedRequest("GET", "/courses/nope", sess)
	req.SetPathValue("id", "nope")
	h.CoursePage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestLessonPageUpstreamFailureRendersRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, discardLogger(), nil)
	h := testPageHandler(t, client, nil)

	sess := &session.Session{
		State:       session.StateAuthenticated,
		User:        &model.User{ID: "u1"},
		AccessToken: "access-1",
	}

	rec := httptest.NewRecorder()
	req := authedRequest("GET", "/lessons/l1", sess)
	req.SetPathValue("id", "l1")
	h.LessonPage(rec, req)

	if rec.Code == http.StatusNotFound {
		t.Fatal("upstream failure rendered as 404")
	}
	if !strings.Contains(rec.Body.String(), "try again") {
		t.Errorf("body does not offer a retry: %q", rec.Body.String())
	}
}
