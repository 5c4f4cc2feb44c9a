package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipebrowser/internal/api"
	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/web"
)

// Deps carries everything the routes need
type Deps struct {
	Recipes  service.IRecipeService
	Keys     keystore.Backend
	Exports  service.IExportService
	Sessions *middleware.Sessions
	Limiter  middleware.Limiter
	Renderer *web.Renderer
	Origins  []string
	// SecureCookies marks browser cookies Secure
	SecureCookies bool
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	// Engine-wide so preflights reach it before route matching
	router.Use(middleware.ForPrefix("/api/v1", middleware.CORS(d.Origins)))

	// Unauthenticated system endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", api.HealthCheck)

	app := router.Group("")
	app.Use(d.Sessions.Middleware())
	if d.Limiter != nil {
		app.Use(middleware.RateLimitMiddleware(d.Limiter))
	}

	tracker := service.NewSearchTracker()

	// API v1 routes
	v1 := app.Group("/api/v1")
	v1.Use(middleware.ErrorHandler())
	api.RegisterRoutes(v1, d.Recipes, d.Keys, d.Exports, tracker)

	// Pages
	web.NewHandler(d.Recipes, d.Keys, tracker, d.Renderer, d.SecureCookies).RegisterRoutes(app)

	return router
}
