package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aidin1998/pxegate/internal/config"
	"github.com/Aidin1998/pxegate/internal/ui"
	"github.com/Aidin1998/pxegate/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	uiServer, err := ui.NewServer(zapLogger, cfg.UI.GatewayURL)
	if err != nil {
		zapLogger.Fatal("Failed to create UI server", zap.Error(err))
	}

	go func() {
		if err := uiServer.Start(fmt.Sprintf(":%d", cfg.UI.Port)); err != nil {
			zapLogger.Fatal("Failed to start UI server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := uiServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shut down UI server", zap.Error(err))
	}
}
