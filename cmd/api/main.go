package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebrowser/config"
	"github.com/pageza/recipebrowser/internal/database"
	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/logging"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/router"
	"github.com/pageza/recipebrowser/internal/server"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/spoonacular"
	"github.com/pageza/recipebrowser/internal/web"
)

func main() {
	logger := logging.Setup("recipebrowser")

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Environment.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.RedisConfigured() {
		rdb, err = database.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	keys, err := keystore.Open(cfg, rdb)
	if err != nil {
		return err
	}
	logger.Info("key store ready", "backend", cfg.KeyStoreBackend, "sealed", cfg.KeyEncryptionSecret != "")

	client := spoonacular.NewClient(cfg.SpoonacularBaseURL, cfg.SpoonacularTimeout)
	recipes := service.NewRecipeService(client, keystore.Scoped(keys, ""))

	var exports service.IExportService
	if cfg.ExportsEnabled() {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		exports = service.NewExportService(store)
		logger.Info("exports enabled", "bucket", cfg.S3Bucket)
	}

	var limiter middleware.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limit := middleware.PerMinute(cfg.RateLimitPerMinute)
		if rdb != nil {
			limiter = middleware.NewRedisLimiter(rdb, limit)
		} else {
			limiter = middleware.NewLocalLimiter(limit)
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	handler := router.SetupRouter(router.Deps{
		Recipes:       recipes,
		Keys:          keys,
		Exports:       exports,
		Sessions:      middleware.NewSessions(cfg.SessionSecret, cfg.Environment == config.Production),
		Limiter:       limiter,
		Renderer:      renderer,
		Origins:       cfg.CORSOrigins,
		SecureCookies: cfg.Environment == config.Production,
	})

	return server.New(cfg, handler).Start(ctx)
}
