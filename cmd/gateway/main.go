package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aidin1998/pxegate/api"
	"github.com/Aidin1998/pxegate/internal/config"
	"github.com/Aidin1998/pxegate/internal/gateway"
	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/Aidin1998/pxegate/pkg/logger"
	"github.com/Aidin1998/pxegate/pkg/telemetry"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	shutdownTelemetry, err := telemetry.Setup(context.Background(), telemetry.Config{
		Traces:  cfg.Telemetry.Traces,
		Metrics: cfg.Telemetry.Metrics,
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	// The PXE handle is created by the first /start request
	session := pxe.NewSession(cfg.PXE.URL, pxe.Dial, zapLogger)
	gatewaySvc := gateway.NewService(zapLogger, session, cfg.PXE.CallTimeout)
	apiServer := api.NewServer(zapLogger, gatewaySvc, cfg.Server.UIOrigin)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// Start server in a goroutine
	go func() {
		if err := apiServer.Start(addr); err != nil {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shut down API server", zap.Error(err))
	}
	session.Close()
	if err := shutdownTelemetry(ctx); err != nil {
		zapLogger.Error("Failed to flush telemetry", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
