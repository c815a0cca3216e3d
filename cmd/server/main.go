package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wastetrack/internal/api"
	"wastetrack/internal/app/service"
	"wastetrack/internal/common/security"
	"wastetrack/internal/domain/repository"
	"wastetrack/internal/platform/config"
	"wastetrack/internal/platform/database"
	"wastetrack/internal/platform/sessionredis"
	"wastetrack/internal/session"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. Initialize Database
	if err := database.Connect(); err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()
	logger.Info("database connected")

	ctx := context.Background()

	// 3. Schema + bootstrap admin
	if err := database.Migrate(ctx, database.DB); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}
	adminHash, err := security.HashPassword(config.AppConfig.AdminPassword)
	if err != nil {
		logger.Fatal("could not hash bootstrap admin password", zap.Error(err))
	}
	if err := database.SeedAdmin(ctx, database.DB, config.AppConfig.AdminUsername, config.AppConfig.AdminEmail, adminHash); err != nil {
		logger.Fatal("bootstrap admin seeding failed", zap.Error(err))
	}

	// 4. Session store (memory by default, Redis when scaled out)
	var sessions session.Store
	switch config.AppConfig.SessionStore {
	case "redis":
		rdb, err := sessionredis.Connect(ctx)
		if err != nil {
			logger.Fatal("could not connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, config.AppConfig.SessionTTL)
		logger.Info("using redis session store")
	default:
		memStore := session.NewMemoryStore(config.AppConfig.SessionTTL)
		defer memStore.Close()
		sessions = memStore
		logger.Info("using in-memory session store")
	}

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	adminRepo := repository.NewPgAdminRepository(database.DB)
	requestRepo := repository.NewPgRequestRepository(database.DB)

	// 6. Services
	authService := service.NewAuthService(userRepo, adminRepo, sessions, logger)
	requestService := service.NewRequestService(requestRepo, logger)

	// 7. Router & HTTP Server
	router := api.NewRouter(authService, requestService, sessions)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.Error(err))
		}
	}()

	<-stop

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
