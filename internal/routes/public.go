package routes

import (
	"gym_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes - маршруты без токена: вход и health-check
func SetupPublicRoutes(api *gin.RouterGroup, appHandlers *handlers.AppHandlers) {
	appHandlers.AuthHandler.RegisterRoutes(api)
	appHandlers.HealthHandler.RegisterRoutes(api)
}
