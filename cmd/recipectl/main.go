// Command recipectl searches recipes and manages the stored Spoonacular API
// key from a terminal, using the same key stores as the web server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pageza/recipebrowser/config"
	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/logging"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/spoonacular"
)

func main() {
	logging.Setup("recipectl")

	if err := newRootCmd(openDeps).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openDeps loads the configuration. Without KEYSTORE_BACKEND the key is kept
// in a SQLite file under the user config directory so it survives between
// invocations.
func openDeps() (keystore.Backend, service.RecipeAPI, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if os.Getenv("KEYSTORE_BACKEND") == "" {
		cfg.KeyStoreBackend = config.BackendSQLite
		if os.Getenv("SQLITE_PATH") == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to locate config directory: %w", err)
			}
			dir = filepath.Join(dir, "recipebrowser")
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, nil, fmt.Errorf("failed to create %s: %w", dir, err)
			}
			cfg.SQLitePath = filepath.Join(dir, "keys.db")
		}
	}
	if cfg.KeyStoreBackend == config.BackendRedis {
		return nil, nil, fmt.Errorf("recipectl does not support the %s key store", config.BackendRedis)
	}

	keys, err := keystore.Open(cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return keys, spoonacular.NewClient(cfg.SpoonacularBaseURL, cfg.SpoonacularTimeout), nil
}
