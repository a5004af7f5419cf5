package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/database"
	catalogRepo "servicehub/database/repository/catalog"
	"servicehub/handlers"
	"servicehub/routes"
	"servicehub/services/ads"
	"servicehub/services/auth"
	"servicehub/services/catalog"
	"servicehub/services/chat"
	"servicehub/services/premium"
	"servicehub/services/session"
	"servicehub/services/storage"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	clock := clockwork.NewRealClock()

	// Catalog.
	var repo catalogRepo.CatalogRepository
	switch cfg.CatalogBackend {
	case "mongo":
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect catalog database", zap.Error(err))
		}
		var err error
		repo, err = catalogRepo.NewMongoCatalogRepo(ctx, database.Database(), catalogRepo.SeedCategories(), catalogRepo.SeedProviders())
		if err != nil {
			logger.Fatal("main: failed to seed catalog", zap.Error(err))
		}
	default:
		repo = catalogRepo.NewSeededMemoryCatalogRepo()
	}

	// Sessions.
	var store session.SessionStore
	switch cfg.SessionBackend {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Fatal("main: failed to connect session cache", zap.Error(err))
		}
		store = session.NewRedisStore(utils.GetSessionCacheClient(), cfg.SessionTTL)
	default:
		store = session.NewExpiringMemoryStore(clock, cfg.SessionTTL)
	}
	sessions := session.NewManager(store, clock)

	// Attachments.
	var attachments storage.StorageService = storage.NewMemoryStorageService()
	if cfg.StorageBackend == "cloudinary" {
		cld, err := storage.NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary storage service", zap.Error(err))
		}
		attachments = cld
	}

	// Chat replies.
	var replier chat.Replier = chat.CannedReplier{}
	if cfg.ReplyMode == "gemini" {
		gemini, err := chat.NewGeminiReplier(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("main: gemini replies unavailable, using canned replies", zap.Error(err))
		} else {
			defer gemini.Close()
			replier = gemini
		}
	}

	// Auth.
	var authProvider auth.Provider
	switch cfg.AuthProvider {
	case "firebase":
		fb, err := auth.NewFirebaseProvider(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase auth", zap.Error(err))
		}
		authProvider = fb
	default:
		authProvider = auth.NewDemoProvider(clock)
	}

	// Services.
	catalogSvc := catalog.NewCatalogService(repo)
	premiumSvc := premium.NewPremiumService(sessions)
	chatSvc := chat.NewChatService(catalogSvc, sessions, premiumSvc, attachments, replier, clock, cfg.ChatReplyDelay)
	adSvc := ads.NewAdService(
		sessions,
		ads.NewTrigger(cfg.VideoAdProbability, cfg.VideoAdDelay, nil),
		clock,
		ads.Options{SkipAfter: cfg.VideoAdSkipAfter, Duration: cfg.VideoAdDuration, Tick: cfg.VideoAdTick},
	)

	svcs := handlers.Services{
		Auth:     authProvider,
		Catalog:  catalogSvc,
		Sessions: sessions,
		Premium:  premiumSvc,
		Chat:     chatSvc,
		Ads:      adSvc,
		TokenTTL: cfg.SessionTTL,
	}
	svcs.WireLifecycle()
	sessions.StartSweeper(ctx, cfg.SessionSweep)

	utils.StartHealthMonitor(ctx, utils.GetSessionCacheClient(), database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(utils.RequestLogger())
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(svcs), cfg.MaxRequestsPerMin)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	chatSvc.Shutdown()
	adSvc.Shutdown()
	stop()
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect catalog database", zap.Error(err))
	}
	if client := utils.GetSessionCacheClient(); client != nil {
		_ = client.Close()
	}

	logger.Info("main: server stopped gracefully")
}
