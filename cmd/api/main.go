package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prepwise/interview-assistant/internal/adapter/handler"
	"github.com/prepwise/interview-assistant/internal/adapter/repository"
	"github.com/prepwise/interview-assistant/internal/infrastructure/cache"
	"github.com/prepwise/interview-assistant/internal/infrastructure/database"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/evaluator"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/livekit"
	"github.com/prepwise/interview-assistant/internal/infrastructure/http/middleware"
	"github.com/prepwise/interview-assistant/internal/infrastructure/storage"
	resultUsecase "github.com/prepwise/interview-assistant/internal/usecase/result"
	roomUsecase "github.com/prepwise/interview-assistant/internal/usecase/room"
	sessionUsecase "github.com/prepwise/interview-assistant/internal/usecase/session"
	pkgai "github.com/prepwise/interview-assistant/pkg/ai"
	"github.com/prepwise/interview-assistant/pkg/config"
	"github.com/prepwise/interview-assistant/pkg/jwt"
	"github.com/prepwise/interview-assistant/pkg/tasks"
	pkgvalidator "github.com/prepwise/interview-assistant/pkg/validator"
)

// @title           Interview Assistant API
// @version         1.0
// @description     API for scheduling interview rooms, running scored interview sessions and serving their results

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger.Info("connecting to database")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// AutoMigrate is a dev convenience; production schema is managed with
	// sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			logger.Fatal("AutoMigrate is enabled in production; disable DB_AUTO_MIGRATE and use sql-migrate")
		}
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to run AutoMigrate", zap.Error(err))
		}
	}

	var store cache.Store
	if cfg.Redis.Enabled {
		logger.Info("connecting to redis", zap.String("addr", cfg.GetRedisAddr()))
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		logger.Info("redis disabled, using in-memory cache")
		store = cache.NewMemoryStore()
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	resultRepo := repository.NewResultRepository(db)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authMW := middleware.NewAuth(jwtManager)

	runner := tasks.NewRunner(logger)
	defer runner.Wait()

	roomService := roomUsecase.NewRoomService(roomRepo, userRepo, store, logger)
	resultService := resultUsecase.NewResultService(resultRepo, roomRepo, roomService, runner, logger)

	evaluatorClient := evaluator.NewClient(&cfg.Evaluator)
	logger.Info("evaluator client configured", zap.String("base_url", cfg.Evaluator.BaseURL))

	captureProvider := livekit.NewProvider(cfg.LiveKit.URL, cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.UseMock)
	if cfg.LiveKit.UseMock {
		logger.Warn("media capture running in mock mode")
	}

	var transcriber sessionUsecase.Transcriber
	if t := pkgai.NewTranscriber(&cfg.Assembly); t != nil {
		transcriber = t
		logger.Info("answer transcription enabled")
	}

	var recorder sessionUsecase.Recorder
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize object storage", zap.Error(err))
		}
		recorder = minioClient
		logger.Info("recording manifests enabled", zap.String("bucket", cfg.Storage.BucketName))
	}

	sessionManager := sessionUsecase.NewManager(
		evaluatorClient,
		captureProvider,
		transcriber,
		recorder,
		roomService,
		resultService,
		runner,
		logger,
	)
	defer sessionManager.Close(context.Background())

	roomHandler := handler.NewRoomHandler(roomService, logger)
	sessionHandler := handler.NewSessionHandler(sessionManager, roomService, logger)
	resultHandler := handler.NewResultHandler(resultService, logger)

	router := handler.NewRouter(cfg, authMW, roomHandler, sessionHandler, resultHandler)
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
