package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// statsPushInterval is how often the websocket feed pushes a fresh stats
// snapshot after the initial one on connect.
const statsPushInterval = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local dashboard only
	},
}

// handleWS upgrades the connection and pushes stats snapshots until the
// client goes away.
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	// Drain control frames so pong/close handling works.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		return conn.WriteJSON(statsPayload{Project: h.project, Stats: h.store.Stats()})
	}
	if err := send(); err != nil {
		return
	}

	ticker := time.NewTicker(statsPushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := send(); err != nil {
				h.logger.Debug("websocket client disconnected", "remote", r.RemoteAddr)
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}
