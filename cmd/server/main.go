package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/internal/api"
	"blogapi/internal/app/service"
	"blogapi/internal/common/security"
	"blogapi/internal/domain/repository"
	"blogapi/internal/platform/cache"
	"blogapi/internal/platform/config"
	"blogapi/internal/platform/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Str("service", "blogapi").Logger()

	// 1. Load Configuration
	config.Load()
	log.Info().Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate(context.Background())

	// 4. Initialize Redis (token denylist)
	cache.ConnectRedis()
	defer cache.CloseRedis()
	tokens := security.NewRedisDenylist(cache.RDB)

	// 5. Upload directory
	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Could not create upload directory")
	}

	// 6. Repositories and Services
	userRepo := repository.NewPgUserRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)

	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo)

	// 7. Router & HTTP Server
	router := api.NewRouter(authService, postService, tokens)

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
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
