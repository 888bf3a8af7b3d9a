package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	"portfolio-backend/internal/delivery/http/api"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/telegram"
	"syscall"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Contact Relay API
// @version         1.0
// @description     Relays portfolio contact form submissions to a messaging channel.
// @host            localhost:3001
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact relay", "port", cfg.Port, "relay", cfg.RelayProvider)
	gin.SetMode(cfg.GinMode)

	// 3. Setup Relay (secrets are injected here, never read by the usecase)
	relay := newRelay(cfg)
	if !relay.IsConfigured() {
		logger.Log.Warn("Relay not fully configured - contact form will answer with configuration errors", "relay", relay.Name())
	}

	// 4. Setup UseCases
	contactUC := usecase.NewContactUsecase(relay)
	healthUC := usecase.NewHealthUsecase()

	// 5. Setup Router
	router := api.NewRouter(api.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newRelay(cfg *config.Config) domain.MessageRelay {
	if cfg.RelayProvider == config.RelayEmail {
		return email.NewEmailService(cfg)
	}
	return telegram.NewClient(telegram.Config{
		BaseURL:   cfg.TelegramAPIURL,
		BotToken:  cfg.TelegramBotToken,
		ChatID:    cfg.TelegramChatID,
		ParseMode: cfg.TelegramParseMode,
		Timeout:   cfg.RelayTimeout(),
	})
}
