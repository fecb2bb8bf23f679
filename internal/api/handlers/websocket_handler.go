package handlers

import (
	"net/http"

	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/websocket"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware in front of this route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades dashboard connections and attaches them to the
// broadcast hub.
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Serve handles the upgrade request for live dashboard updates.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
