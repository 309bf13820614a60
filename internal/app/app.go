package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gym_backend/internal/auth"
	"gym_backend/internal/config"
	"gym_backend/internal/database"
	"gym_backend/internal/email"
	"gym_backend/internal/handlers"
	"gym_backend/internal/imageprocessor"
	"gym_backend/internal/logger"
	"gym_backend/internal/middleware"
	"gym_backend/internal/repositories"
	"gym_backend/internal/routes"
	"gym_backend/internal/services"
	"gym_backend/internal/storage"
	"gym_backend/internal/validator"
	"gym_backend/internal/web"
	"gym_backend/internal/workers"
	"gym_backend/pkg/apperrors"
	"gym_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Application - собранное приложение: роутер и то, что живет вне запросов
type Application struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *gin.Engine
	Services  *services.ServiceContainer
	WSManager *ws.WebSocketManager
	Tokens    *auth.TokenManager
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(gormDB)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Auto-migration failed", "error", err)
		}
	}

	application, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up application", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg, application.Services.AuthService); err != nil {
		// без администратора войти в систему некому
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	go application.WSManager.Run(ctx)

	scheduler, err := startJobs(cfg, gormDB, application.Services)
	if err != nil {
		logger.Fatal("Failed to schedule jobs", "error", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает сервисы, хэндлеры и маршруты. WebSocket-менеджер
// возвращается незапущенным: Run вызывает вызывающий код.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*Application, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	wsManager := ws.NewWebSocketManager()

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, storageInstance, tokens, wsManager)

	// 2. Хэндлеры
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	appHandlers := initializeHandlers(baseHandler, serviceContainer)

	// 3. Страницы /ui
	sessions := web.NewSessionStore(cfg.Web.CookieSecret, cfg.Web.SecureCookie, time.Duration(cfg.JWT.TTL)*time.Minute, tokens)
	pages, err := web.NewPages(baseHandler, serviceContainer, sessions, customValidator)
	if err != nil {
		return nil, err
	}

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	opts := routes.Options{Swagger: true}
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		opts.UploadsDir = local.BasePath()
		opts.UploadsURL = cfg.Storage.BaseURL
	}
	routes.RegisterRoutes(
		ginRouter,
		appHandlers,
		ws.NewWebSocketHandler(wsManager, cfg.Server.CORSOrigins),
		pages,
		tokens,
		opts,
	)

	return &Application{
		Config:    cfg,
		DB:        gormDB,
		Router:    ginRouter,
		Services:  serviceContainer,
		WSManager: wsManager,
		Tokens:    tokens,
	}, nil
}

func initializeServices(
	cfg *config.Config,
	storageInstance storage.Storage,
	tokens *auth.TokenManager,
	wsManager *ws.WebSocketManager,
) *services.ServiceContainer {
	smtp := email.DefaultConfig()
	if cfg.Email.Enabled {
		smtp.Host = cfg.Email.SMTPHost
		smtp.Port = cfg.Email.SMTPPort
		smtp.Username = cfg.Email.SMTPUsername
		smtp.Password = cfg.Email.SMTPPassword
		smtp.FromEmail = cfg.Email.FromEmail
		smtp.FromName = cfg.Email.FromName
	}
	emailService := email.NewProvider(smtp, email.NewTemplateManager())

	// --- Репозитории ---
	equipmentRepo := repositories.NewEquipmentRepository()
	memberRepo := repositories.NewMemberRepository()
	trainerRepo := repositories.NewTrainerRepository()
	membershipRepo := repositories.NewMembershipRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	transactionRepo := repositories.NewTransactionRepository()
	userRepo := repositories.NewUserRepository()

	// --- Сервисы ---
	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.AvatarSize)
	uploadService := services.NewUploadService(storageInstance, processor, services.UploadConfig{
		MaxFileSize:  cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})
	reportService := services.NewReportService(memberRepo, subscriptionRepo, nil)

	return &services.ServiceContainer{
		EquipmentService:  services.NewEquipmentService(equipmentRepo, wsManager),
		MemberService:     services.NewMemberService(memberRepo, subscriptionRepo, membershipRepo, trainerRepo, transactionRepo, wsManager, nil),
		TrainerService:    services.NewTrainerService(trainerRepo, wsManager),
		MembershipService: services.NewMembershipService(membershipRepo, wsManager),
		SubscriptionService: services.NewSubscriptionService(
			subscriptionRepo, memberRepo, membershipRepo, trainerRepo, transactionRepo, wsManager, nil,
		),
		TransactionService:  services.NewTransactionService(transactionRepo, subscriptionRepo, wsManager),
		ReportService:       reportService,
		AuthService:         services.NewAuthService(userRepo, tokens),
		UploadService:       uploadService,
		NotificationService: services.NewNotificationService(reportService, memberRepo, emailService, cfg.Email.ReportTo, nil),
		EmailService:        emailService,
	}
}

func initializeHandlers(baseHandler *handlers.BaseHandler, services *services.ServiceContainer) *handlers.AppHandlers {
	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.AuthService),
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
		EquipmentHandler:    handlers.NewEquipmentHandler(baseHandler, services.EquipmentService),
		MemberHandler:       handlers.NewMemberHandler(baseHandler, services.MemberService, services.ReportService, services.UploadService),
		TrainerHandler:      handlers.NewTrainerHandler(baseHandler, services.TrainerService, services.UploadService),
		MembershipHandler:   handlers.NewMembershipHandler(baseHandler, services.MembershipService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.SubscriptionService),
		TransactionHandler:  handlers.NewTransactionHandler(baseHandler, services.TransactionService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	router.Use(gin.CustomRecovery(apperrors.RecoveryHandler))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db, time.Duration(cfg.Database.QueryTimeout)*time.Second))
	return router
}

func startJobs(cfg *config.Config, db *gorm.DB, svc *services.ServiceContainer) (*workers.Scheduler, error) {
	if !cfg.Jobs.Enabled {
		logger.Info("Background jobs disabled")
		return nil, nil
	}

	scheduler := workers.NewScheduler()
	expire := workers.NewSubscriptionWorker(db, svc.SubscriptionService)
	if err := scheduler.Add(cfg.Jobs.ExpireSubscriptions, expire); err != nil {
		return nil, err
	}
	if err := scheduler.Add(cfg.Jobs.ExpiringReport, workers.NewReportWorker(db, svc.NotificationService)); err != nil {
		return nil, err
	}
	scheduler.Start()
	// статусы могли устареть, пока сервер был выключен
	scheduler.RunNow(expire)
	return scheduler, nil
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := authService.SeedAdmin(db, services.AdminSeed{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		GymID:    cfg.Admin.GymID,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if !created {
		logger.Info("Users already exist. Skipping admin creation.")
	}
	return nil
}
