package main

import (
	"log"
	"net/http"
	"os"

	_ "khabarkhana/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"khabarkhana/internal/auth"
	"khabarkhana/internal/cache"
	"khabarkhana/internal/config"
	"khabarkhana/internal/db"
	"khabarkhana/internal/handler"
	"khabarkhana/internal/media"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
	"khabarkhana/internal/router"
	"khabarkhana/internal/service"
)

// @title Khabarkhana News API
// @version 1.0
// @description News portal API with article publishing workflow, categories and JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Article{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Article{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	mediaStore, err := media.NewS3Store(cfg)
	if err != nil {
		logger.Fatal("media store init", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	authMW := auth.NewMiddleware(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, mediaStore)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	articleService := service.NewArticleService(articleRepo, categoryRepo, userRepo, mediaStore, logger)
	statsService := service.NewStatsService(articleRepo, categoryRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, jwtService)
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminHandler := handler.NewAdminHandler(statsService)

	// Register routes
	router.Register(
		e,
		cfg,
		authMW,
		authHandler,
		userHandler,
		articleHandler,
		categoryHandler,
		adminHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	logger.Info("swagger documentation available", zap.String("url", swaggerHost+"/swagger/index.html"))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
