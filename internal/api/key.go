package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/types"
)

// KeyHandler manages the Spoonacular key of the caller's profile
type KeyHandler struct {
	recipes service.IRecipeService
	keys    keystore.Backend
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(recipes service.IRecipeService, keys keystore.Backend) *KeyHandler {
	return &KeyHandler{recipes: recipes, keys: keys}
}

func (h *KeyHandler) RegisterRoutes(router *gin.RouterGroup) {
	key := router.Group("/key")
	{
		key.GET("", h.Status)
		key.PUT("", h.Set)
		key.DELETE("", h.Clear)
	}
}

// Status handles GET /key
func (h *KeyHandler) Status(c *gin.Context) {
	store := keystore.Scoped(h.keys, middleware.ProfileID(c))
	ok, err := store.Has(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.APIKeyStatusResponse{HasKey: ok})
}

// Set handles PUT /key
func (h *KeyHandler) Set(c *gin.Context) {
	var req types.SetAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	value := strings.TrimSpace(req.APIKey)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key must not be blank"})
		return
	}

	if err := forProfile(c, h.recipes, h.keys).SetAPIKey(c.Request.Context(), value); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /key by storing the empty key
func (h *KeyHandler) Clear(c *gin.Context) {
	if err := forProfile(c, h.recipes, h.keys).SetAPIKey(c.Request.Context(), ""); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
