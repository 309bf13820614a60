package ws

import (
	"net/http"
	"strconv"

	"gym_backend/internal/events"
	"gym_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Manager  *WebSocketManager
	upgrader websocket.Upgrader
}

// NewWebSocketHandler: allowedOrigins пустой - разрешен любой origin
func NewWebSocketHandler(manager *WebSocketManager, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// ServeWS - GET /ws?gymId=
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	var gymID uint
	if raw := c.Query("gymId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "gymId must be a positive integer", "code": "VALIDATION_FAILED"})
			return
		}
		gymID = uint(v)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		ID:      uuid.New().String(),
		GymID:   gymID,
		Conn:    conn,
		Send:    make(chan events.Event, 64),
		Manager: h.Manager,
	}
	h.Manager.Register(client)

	go client.readPump()
	go client.writePump()
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
