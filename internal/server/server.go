package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samphillips38/bloom-web-sub001/internal/api"
	"github.com/samphillips38/bloom-web-sub001/internal/config"
	"github.com/samphillips38/bloom-web-sub001/internal/handler"
	"github.com/samphillips38/bloom-web-sub001/internal/metrics"
	"github.com/samphillips38/bloom-web-sub001/internal/middleware"
	"github.com/samphillips38/bloom-web-sub001/internal/session"
	"github.com/samphillips38/bloom-web-sub001/internal/tokenstore"
	"github.com/samphillips38/bloom-web-sub001/internal/ws"
)

type Server struct {
	db          *sql.DB
	tokens      *tokenstore.Store
	sessions    *session.Manager
	hub         *ws.Hub
	authH       *handler.AuthHandler
	pageH       *handler.PageHandler
	rateLimiter *middleware.RateLimiter
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, logger.With("component", "api"), m)

	tokens := tokenstore.NewStore(db, cfg.Auth.Passphrase)
	sessions := session.NewManager(client, tokens, logger.With("component", "session"))
	hub := ws.NewHub(logger.With("component", "ws"), m)

	return &Server{
		db:          db,
		tokens:      tokens,
		sessions:    sessions,
		hub:         hub,
		authH:       handler.NewAuthHandler(sessions, cfg.Social, m, logger.With("component", "auth")),
		pageH:       handler.NewPageHandler(client, sessions, hub, logger.With("component", "pages")),
		rateLimiter: middleware.NewRateLimiter(),
		registry:    registry,
		metrics:     m,
		logger:      logger,
	}
}

// TokenStore returns the token store for cleanup tasks.
func (s *Server) TokenStore() *tokenstore.Store {
	return s.tokens
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes. The login and register screens resolve the session
	// without gating so they can bounce authenticated users home.
	resolve := middleware.ResolveSession(s.sessions)
	outerMux.Handle("GET /login", resolve(http.HandlerFunc(s.authH.LoginPage)))
	outerMux.Handle("POST /login", s.rateLimited(s.authH.Login))
	outerMux.Handle("GET /register", resolve(http.HandlerFunc(s.authH.RegisterPage)))
	outerMux.Handle("POST /register", s.rateLimited(s.authH.Register))
	outerMux.Handle("POST /auth/google", s.rateLimited(s.authH.GoogleLogin))
	outerMux.Handle("POST /auth/apple", s.rateLimited(s.authH.AppleLogin))
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessions)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"), s.metrics)(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.Handler {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	return middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)(h)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Page routes — full layout
	mux.HandleFunc("GET /", s.pageH.Dashboard)
	mux.HandleFunc("GET /courses/{id}", s.pageH.CoursePage)
	mux.HandleFunc("GET /lessons/{id}", s.pageH.LessonPage)
	mux.HandleFunc("GET /profile", s.pageH.ProfilePage)
	mux.HandleFunc("GET /premium", s.pageH.PremiumPage)

	// Mutations
	mux.HandleFunc("POST /lessons/{id}/complete", s.pageH.LessonComplete)
	mux.HandleFunc("PUT /profile/daily-goal", s.pageH.DailyGoalUpdate)
	mux.HandleFunc("POST /premium/checkout", s.pageH.Checkout)
	mux.HandleFunc("POST /premium/portal", s.pageH.Portal)
	mux.HandleFunc("POST /premium/banner/dismiss", s.pageH.BannerDismiss)
	mux.HandleFunc("POST /premium/admin/grant", s.pageH.AdminGrant)
	mux.HandleFunc("POST /premium/admin/revoke", s.pageH.AdminRevoke)

	// Partials (HTMX)
	mux.HandleFunc("GET /partials/energy", s.pageH.EnergyPartial)

	// WebSocket — keeps multiple open tabs of a session in sync
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "ws")))
}
