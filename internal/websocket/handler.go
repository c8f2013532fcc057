package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/shoplist/internal/auth"
)

// HandleWebSocket upgrades a signed-in request and runs it as a client of the
// session's family.
func HandleWebSocket(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		family := auth.FamilyCode(r.Context())
		if family == "" {
			http.Error(w, "not signed in", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, family)
		client.Run(r.Context())
		logger.Debug("websocket closed", "family_clients", hub.FamilyCount(family))
	}
}
