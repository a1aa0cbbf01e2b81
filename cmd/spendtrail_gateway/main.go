package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/spendtrail/spendtrail_backend/internal/gateway"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := gateway.Router(cfg, logger)
	if err != nil {
		logger.Error("Failed to build gateway router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Gateway starting", slog.String("port", cfg.GatewayPort))
	if err := r.Run(":" + cfg.GatewayPort); err != nil {
		logger.Error("Gateway failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
