package auth

import (
	"context"

	"github.com/samphillips38/bloom-web-sub001/internal/session"
)

type contextKey struct{}

// WithSession attaches the resolved session to the request context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// SessionFrom returns the resolved session, or nil if the request was not
// routed through the guard.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(contextKey{}).(*session.Session)
	return sess
}

// UserID returns the authenticated user's id, or "" when anonymous.
func UserID(ctx context.Context) string {
	sess := SessionFrom(ctx)
	if !sess.Authenticated() {
		return ""
	}
	return sess.User.ID
}

// IsPremium reports the session user's premium flag.
func IsPremium(ctx context.Context) bool {
	sess := SessionFrom(ctx)
	if !sess.Authenticated() {
		return false
	}
	return sess.User.IsPremium
}
