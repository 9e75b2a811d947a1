package ws

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/samphillips38/bloom-web-sub001/internal/auth"
)

// HandleWebSocket upgrades a connection and runs it as a Hub client.
// The route sits behind the auth guard, so the session is always resolved.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := auth.SessionFrom(r.Context())
		if !sess.Authenticated() {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, sess.LocalID)
		client.Run(r.Context())
	}
}
