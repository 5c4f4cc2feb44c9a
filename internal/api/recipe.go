package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/types"
)

// RecipeHandler serves search, detail and export as JSON
type RecipeHandler struct {
	recipes service.IRecipeService
	keys    keystore.Backend
	exports service.IExportService
	tracker *service.SearchTracker
}

// NewRecipeHandler creates a new RecipeHandler. exports may be nil when no
// bucket is configured.
func NewRecipeHandler(recipes service.IRecipeService, keys keystore.Backend, exports service.IExportService, tracker *service.SearchTracker) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		keys:    keys,
		exports: exports,
		tracker: tracker,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.Search)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/download", h.Download)
		recipes.POST("/:id/export", h.Export)
	}
}

// Search handles GET /recipes?q=&limit=
func (h *RecipeHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	if h.tracker != nil {
		var done func()
		ctx, done = h.tracker.Begin(ctx, middleware.ProfileID(c))
		defer done()
	}

	result := forProfile(c, h.recipes, h.keys).Search(ctx, c.Query("q"), limit)
	c.JSON(http.StatusOK, types.SearchResponse{
		Source:  string(result.Source),
		Reason:  string(result.Reason),
		Recipes: result.Recipes,
	})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := forProfile(c, h.recipes, h.keys).Details(c.Request.Context(), id)
	c.JSON(http.StatusOK, types.DetailResponse{
		Source: string(result.Source),
		Reason: string(result.Reason),
		Recipe: result.Recipe,
	})
}

// Download handles GET /recipes/:id/download
func (h *RecipeHandler) Download(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := forProfile(c, h.recipes, h.keys).Details(c.Request.Context(), id).Recipe.Recipe
	WriteDownload(c, recipe.Title, service.DownloadText(recipe))
}

// Export handles POST /recipes/:id/export
func (h *RecipeHandler) Export(c *gin.Context) {
	if h.exports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "exports are not configured"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := forProfile(c, h.recipes, h.keys).Details(c.Request.Context(), id).Recipe.Recipe
	export, err := h.exports.Publish(c.Request.Context(), recipe)
	if err != nil {
		c.Status(http.StatusBadGateway)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ExportResponse{
		URL:       export.URL,
		Filename:  export.Filename,
		ExpiresAt: export.ExpiresAt,
	})
}

// WriteDownload sends text as a plain-text attachment named after title
func WriteDownload(c *gin.Context, title, text string) {
	c.Header("Content-Disposition", `attachment; filename="`+service.DownloadFilename(title)+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
