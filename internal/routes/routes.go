package routes

import (
	"net/http"

	"gym_backend/internal/auth"
	"gym_backend/internal/handlers"
	"gym_backend/internal/logger"
	"gym_backend/internal/middleware"
	"gym_backend/internal/web"
	"gym_backend/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - необязательные части маршрутизации
type Options struct {
	// UploadsDir - каталог локального хранилища; пусто для S3/R2
	UploadsDir string
	// UploadsURL - публичный префикс локальных файлов
	UploadsURL string
	Swagger    bool
}

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	pages *web.Pages,
	tokens *auth.TokenManager,
	opts Options,
) {
	api := ginRouter.Group("/api")
	SetupPublicRoutes(api, appHandlers)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.EquipmentHandler.RegisterRoutes(protected)
		appHandlers.MemberHandler.RegisterRoutes(protected)
		appHandlers.TrainerHandler.RegisterRoutes(protected)
		appHandlers.MembershipHandler.RegisterRoutes(protected)
		appHandlers.SubscriptionHandler.RegisterRoutes(protected)
		appHandlers.TransactionHandler.RegisterRoutes(protected)
	}

	SetupWebSocketRoutes(ginRouter, wsHandler, tokens)

	if pages != nil {
		pages.RegisterRoutes(ginRouter)
		ginRouter.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/ui/")
		})
	}

	if opts.UploadsDir != "" {
		prefix := opts.UploadsURL
		if prefix == "" {
			prefix = "/uploads"
		}
		ginRouter.Static(prefix, opts.UploadsDir)
		logger.Info("Serving local uploads", "prefix", prefix, "dir", opts.UploadsDir)
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
