package feed

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts websocket upgrades from the given origins. An empty
// list or "*" allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/feed", h.Subscribe)
}

// Subscribe upgrades to a websocket that streams booking events.
//
// Endpoint: GET /api/v1/feed?topics=court:1,person:7
func (h *Handler) Subscribe(c *gin.Context) {
	var topics []string
	for _, t := range strings.Split(c.Query("topics"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed: websocket upgrade failed: %v", err)
		return
	}
	log.Printf("feed: subscriber connected topics=%v", topics)

	h.hub.ServeWS(conn, topics)
	log.Printf("feed: subscriber disconnected")
}
