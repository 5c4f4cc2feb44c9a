package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/service"
)

var errInvalidID = errors.New("invalid recipe id")

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// parseID reads the positive integer :id path parameter
func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// forProfile binds the recipe service to the caller's stored key
func forProfile(c *gin.Context, recipes service.IRecipeService, keys keystore.Backend) service.IRecipeService {
	return recipes.WithKeys(keystore.Scoped(keys, middleware.ProfileID(c)))
}

// RegisterRoutes registers all API routes on the /api/v1 group
func RegisterRoutes(v1 *gin.RouterGroup, recipes service.IRecipeService, keys keystore.Backend, exports service.IExportService, tracker *service.SearchTracker) {
	v1.GET("/health", HealthCheck)
	NewRecipeHandler(recipes, keys, exports, tracker).RegisterRoutes(v1)
	NewKeyHandler(recipes, keys).RegisterRoutes(v1)
}
