package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/config"
	"github.com/samphillips38/bloom-web-sub001/internal/metrics"
	"github.com/samphillips38/bloom-web-sub001/internal/middleware"
	"github.com/samphillips38/bloom-web-sub001/internal/session"
)

// cookieMaxAge matches the refresh token lifetime on the API side.
const cookieMaxAge = 90 * 24 * 60 * 60

type AuthHandler struct {
	mgr       *session.Manager
	social    config.SocialConfig
	metrics   *metrics.Metrics
	templates *template.Template
	logger    *slog.Logger
}

func NewAuthHandler(mgr *session.Manager, social config.SocialConfig, m *metrics.Metrics, logger *slog.Logger) *AuthHandler {
	tmpl := template.Must(template.ParseGlob("web/templates/auth_*.html"))
	return &AuthHandler{
		mgr:       mgr,
		social:    social,
		metrics:   m,
		templates: tmpl,
		logger:    logger,
	}
}

// authPageData is shared by the login and register screens. Social
// buttons only render when a client id is configured.
func (h *AuthHandler) authPageData(errMsg string) map[string]any {
	return map[string]any{
		"Error":          errMsg,
		"GoogleClientID": h.social.GoogleClientID,
		"AppleClientID":  h.social.AppleClientID,
	}
}

// LoginPage renders the login form. Authenticated users are sent home:
// the guard works both ways.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFrom(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData(""))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData("Email and password are required"))
		return
	}

	sess, token, err := h.mgr.Login(r.Context(), email, password)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failed").Inc()
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData(err.Error()))
		return
	}
	h.metrics.LoginAttempts.WithLabelValues("ok").Inc()

	h.setSessionCookie(w, r, token)
	h.logger.Info("login", "user_id", sess.User.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFrom(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.templates.ExecuteTemplate(w, "auth_register.html", h.authPageData(""))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if name == "" || email == "" || password == "" {
		h.templates.ExecuteTemplate(w, "auth_register.html", h.authPageData("Name, email, and password are required"))
		return
	}

	sess, token, err := h.mgr.Register(r.Context(), name, email, password)
	if err != nil {
		h.templates.ExecuteTemplate(w, "auth_register.html", h.authPageData(err.Error()))
		return
	}

	h.setSessionCookie(w, r, token)
	h.logger.Info("register", "user_id", sess.User.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GoogleLogin receives the credential posted back by Google Identity
// Services and exchanges it for a Bloom session.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	credential := r.FormValue("credential")
	if credential == "" {
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData("Google sign-in was cancelled"))
		return
	}

	sess, token, err := h.mgr.GoogleLogin(r.Context(), credential)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failed").Inc()
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData(err.Error()))
		return
	}
	h.metrics.LoginAttempts.WithLabelValues("ok").Inc()

	h.setSessionCookie(w, r, token)
	h.logger.Info("google login", "user_id", sess.User.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AppleLogin receives the form_post callback from Sign in with Apple.
// Apple includes the user's name only on first authorization.
func (h *AuthHandler) AppleLogin(w http.ResponseWriter, r *http.Request) {
	idToken := r.FormValue("id_token")
	if idToken == "" {
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData("Apple sign-in was cancelled"))
		return
	}
	nameHint := strings.TrimSpace(r.FormValue("name"))

	sess, token, err := h.mgr.AppleLogin(r.Context(), idToken, nameHint)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failed").Inc()
		h.templates.ExecuteTemplate(w, "auth_login.html", h.authPageData(err.Error()))
		return
	}
	h.metrics.LoginAttempts.WithLabelValues("ok").Inc()

	h.setSessionCookie(w, r, token)
	h.logger.Info("apple login", "user_id", sess.User.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the local session unconditionally; remote revocation is
// fire-and-forget inside the manager.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	if err := h.mgr.Logout(r.Context(), sess); err != nil {
		h.logger.Error("logout", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}
