package middleware

import (
	"net/http"

	"github.com/samphillips38/bloom-web-sub001/internal/auth"
	"github.com/samphillips38/bloom-web-sub001/internal/session"
)

const SessionCookieName = "bloom_session"

// RequireAuth resolves the browser session before the handler runs and
// gates access on the result: anonymous requests are redirected to the
// login screen (the originally requested location is discarded),
// authenticated ones proceed with the session in the request context.
// HTMX-aware: partial requests get an HX-Redirect header instead of a 303.
func RequireAuth(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := mgr.Resolve(r.Context(), cookieToken(r))
			if !sess.Authenticated() {
				RedirectToLogin(w, r)
				return
			}

			ctx := auth.WithSession(r.Context(), sess)
			r2 := r.WithContext(ctx)
			next.ServeHTTP(w, r2)
			// The inner mux sets the matched pattern on the clone;
			// copy it back so the request logger sees it.
			r.Pattern = r2.Pattern
		})
	}
}

// ResolveSession resolves the session without gating, for screens that
// render either way (the login page redirects authenticated users home).
func ResolveSession(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := mgr.Resolve(r.Context(), cookieToken(r))
			ctx := auth.WithSession(r.Context(), sess)
			r2 := r.WithContext(ctx)
			next.ServeHTTP(w, r2)
			r.Pattern = r2.Pattern
		})
	}
}

func cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RedirectToLogin sends the browser to the login screen.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
