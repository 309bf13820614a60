package routes

import (
	"gym_backend/internal/auth"
	"gym_backend/internal/logger"
	"gym_backend/internal/middleware"
	"gym_backend/ws"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes - /ws?gymId=; токен в заголовке или access_token
func SetupWebSocketRoutes(r *gin.Engine, wsHandler *ws.WebSocketHandler, tokens *auth.TokenManager) {
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware(tokens))
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}
