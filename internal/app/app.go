package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fitplan_backend/internal/config"
	"fitplan_backend/internal/database"
	"fitplan_backend/internal/email"
	"fitplan_backend/internal/handlers"
	"fitplan_backend/internal/logger"
	"fitplan_backend/internal/middleware"
	"fitplan_backend/internal/models"
	"fitplan_backend/internal/notify"
	"fitplan_backend/internal/repositories"
	"fitplan_backend/internal/routes"
	"fitplan_backend/internal/services"
	"fitplan_backend/internal/validator"
	"fitplan_backend/internal/watcher"
	"fitplan_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := os.MkdirAll(cfg.State.Dir, 0o755); err != nil {
		logger.Fatal("Failed to create state directory", "dir", cfg.State.Dir, "error", err)
	}

	if err := seedFirstAdmin(repositories.NewUserRepository(gormDB), cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, refreshWorker := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refreshWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and the Gin engine. The
// refresh worker is returned unstarted so tests can drive it manually.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.RefreshWorker) {
	itemRepo := repositories.NewPurchaseItemRepository(gormDB)
	activationRepo := repositories.NewActivationRepository(gormDB)
	formResponseRepo := repositories.NewFormResponseRepository(gormDB)

	center := notify.NewCenter(cfg.State.Dir)
	mailer := buildEmailProvider(cfg)

	serviceContainer := initializeServices(itemRepo, activationRepo, formResponseRepo, center, mailer)
	appHandlers := initializeHandlers(serviceContainer)

	snapshotStore := watcher.NewFileSnapshotStore(filepath.Join(cfg.State.Dir, "plan_snapshot.json"))
	planWatcher := watcher.NewReadyPlanWatcher(snapshotStore, serviceContainer.NotificationService)
	refreshWorker := workers.NewRefreshWorker(
		itemRepo,
		planWatcher,
		time.Duration(cfg.Worker.RefreshIntervalSeconds)*time.Second,
	)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, refreshWorker
}

// seedFirstAdmin makes sure the configured admin identity exists so the admin
// surface is reachable on a fresh database.
func seedFirstAdmin(userRepo repositories.UserRepository, cfg *config.Config) error {
	if cfg.Admin.Email == "" {
		logger.Warn("Admin email not configured, skipping admin seeding")
		return nil
	}

	_, err := userRepo.FindByEmail(cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	admin := &models.User{
		Email:       cfg.Admin.Email,
		DisplayName: cfg.Admin.Name,
		Role:        models.UserRoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info("First admin user created", "email", cfg.Admin.Email)
	return nil
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email disabled in config, using noop provider")
		return email.NoopProvider{}
	}

	provider, err := email.NewSMTPProvider(email.Config{
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

func initializeServices(
	itemRepo repositories.PurchaseItemRepository,
	activationRepo repositories.ActivationRepository,
	formResponseRepo repositories.FormResponseRepository,
	center *notify.Center,
	mailer email.Provider,
) *services.ServiceContainer {
	notificationService := services.NewNotificationService(center, mailer)
	activationService := services.NewActivationService(itemRepo, activationRepo, notificationService)
	planQueryService := services.NewPlanQueryService(itemRepo, activationRepo)
	formService := services.NewFormService(formResponseRepo, itemRepo)

	return &services.ServiceContainer{
		ActivationService:   activationService,
		PlanQueryService:    planQueryService,
		FormService:         formService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		PlanHandler:         handlers.NewPlanHandler(baseHandler, services.ActivationService, services.PlanQueryService),
		FormHandler:         handlers.NewFormHandler(baseHandler, services.FormService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
