package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards may be served from another origin
	},
}

// FeedHandler streams triage events to dashboards over a websocket.
type FeedHandler struct {
	hub *services.FeedHub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *services.FeedHub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
	}
}

// Subscribe upgrades the connection and keeps it registered until the
// client goes away. Inbound messages are ignored.
func (h *FeedHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	id := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn_id", id).Msg("Feed connection closed unexpectedly")
			}
			return
		}
	}
}
