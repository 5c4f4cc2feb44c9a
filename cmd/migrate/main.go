package main

import (
	"os"

	"github.com/pageza/recipebrowser/config"
	"github.com/pageza/recipebrowser/internal/database"
	"github.com/pageza/recipebrowser/internal/logging"
)

func main() {
	logger := logging.Setup("migrate")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// database.Open migrates the schema before returning
	if _, err := database.Open(cfg); err != nil {
		logger.Error("migration failed", "backend", cfg.KeyStoreBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied", "backend", cfg.KeyStoreBackend)
}
