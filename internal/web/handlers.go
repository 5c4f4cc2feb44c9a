// Package web serves the server-rendered recipe browser: the searchable
// grid, the detail overlay, the API key settings dialog, likes and text
// downloads.
package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebrowser/internal/api"
	"github.com/pageza/recipebrowser/internal/demo"
	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/model"
	"github.com/pageza/recipebrowser/internal/service"
)

// cardBadges is how many dish types a grid card shows
const cardBadges = 3

// detailNutrients is how many nutrients the detail view shows
const detailNutrients = 8

// Layout is the data every page passes to the base template
type Layout struct {
	Query  string
	HasKey bool
}

// Card is one recipe tile in the grid
type Card struct {
	model.Recipe
	Liked bool
}

// IndexPage is the data of the recipe grid
type IndexPage struct {
	Layout
	Cards   []Card
	Curated bool
	Notice  string
}

// DetailPage is the data of the detail overlay
type DetailPage struct {
	Layout
	Recipe    model.Detail
	Nutrients []model.Nutrient
	Liked     bool
	Notice    string
}

// SettingsPage is the data of the API key dialog
type SettingsPage struct {
	Layout
	Saved   bool
	Cleared bool
	Error   string
}

// ErrorPage is shown for unknown recipes and key store failures
type ErrorPage struct {
	Layout
	Status  int
	Message string
}

// Handler serves the HTML pages
type Handler struct {
	recipes  service.IRecipeService
	keys     keystore.Backend
	tracker  *service.SearchTracker
	renderer *Renderer
	secure   bool
}

// NewHandler creates a new Handler. secure marks the liked cookie Secure.
func NewHandler(recipes service.IRecipeService, keys keystore.Backend, tracker *service.SearchTracker, renderer *Renderer, secure bool) *Handler {
	return &Handler{
		recipes:  recipes,
		keys:     keys,
		tracker:  tracker,
		renderer: renderer,
		secure:   secure,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.GET("/recipes/:id", h.Detail)
	router.POST("/recipes/:id/like", h.ToggleLike)
	router.GET("/recipes/:id/download", h.Download)
	router.GET("/settings", h.Settings)
	router.POST("/settings", h.SaveSettings)
	router.POST("/settings/clear", h.ClearSettings)
}

func (h *Handler) forProfile(c *gin.Context) service.IRecipeService {
	return h.recipes.WithKeys(keystore.Scoped(h.keys, middleware.ProfileID(c)))
}

func (h *Handler) layout(c *gin.Context, svc service.IRecipeService) Layout {
	return Layout{
		Query:  strings.TrimSpace(c.Query("q")),
		HasKey: svc.HasAPIKey(c.Request.Context()),
	}
}

// Index handles GET /. Without a query the curated collection is shown.
func (h *Handler) Index(c *gin.Context) {
	svc := h.forProfile(c)
	page := IndexPage{Layout: h.layout(c, svc)}

	var recipes []model.Recipe
	if page.Query == "" {
		page.Curated = true
		recipes = demo.Recipes()
	} else {
		ctx := c.Request.Context()
		if h.tracker != nil {
			var done func()
			ctx, done = h.tracker.Begin(ctx, middleware.ProfileID(c))
			defer done()
		}
		result := svc.Search(ctx, page.Query, 0)
		recipes = result.Recipes
		page.Notice = notice(result.Outcome)
	}

	liked := h.liked(c)
	page.Cards = make([]Card, len(recipes))
	for i, r := range recipes {
		page.Cards[i] = Card{Recipe: r, Liked: liked[r.ID]}
	}

	h.renderer.Render(c, http.StatusOK, "index.html", page)
}

// Detail handles GET /recipes/:id
func (h *Handler) Detail(c *gin.Context) {
	svc := h.forProfile(c)
	id, ok := h.recipeID(c, svc)
	if !ok {
		return
	}

	result := svc.Details(c.Request.Context(), id)
	h.renderer.Render(c, http.StatusOK, "detail.html", DetailPage{
		Layout:    h.layout(c, svc),
		Recipe:    result.Recipe,
		Nutrients: result.Recipe.TopNutrients(detailNutrients),
		Liked:     h.liked(c)[id],
		Notice:    notice(result.Outcome),
	})
}

// ToggleLike handles POST /recipes/:id/like
func (h *Handler) ToggleLike(c *gin.Context) {
	id, ok := h.recipeID(c, h.forProfile(c))
	if !ok {
		return
	}

	liked := h.liked(c)
	liked.toggle(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LikedCookie, liked.String(), 365*24*60*60, "/", "", h.secure, true)

	c.Redirect(http.StatusSeeOther, backTo(c.Request.Referer()))
}

// Download handles GET /recipes/:id/download
func (h *Handler) Download(c *gin.Context) {
	svc := h.forProfile(c)
	id, ok := h.recipeID(c, svc)
	if !ok {
		return
	}

	recipe := svc.Details(c.Request.Context(), id).Recipe.Recipe
	api.WriteDownload(c, recipe.Title, service.DownloadText(recipe))
}

// Settings handles GET /settings
func (h *Handler) Settings(c *gin.Context) {
	svc := h.forProfile(c)
	h.renderer.Render(c, http.StatusOK, "settings.html", SettingsPage{
		Layout:  h.layout(c, svc),
		Saved:   c.Query("saved") == "1",
		Cleared: c.Query("cleared") == "1",
	})
}

// SaveSettings handles POST /settings
func (h *Handler) SaveSettings(c *gin.Context) {
	svc := h.forProfile(c)
	value := strings.TrimSpace(c.PostForm("api_key"))
	if value == "" {
		h.renderer.Render(c, http.StatusUnprocessableEntity, "settings.html", SettingsPage{
			Layout: h.layout(c, svc),
			Error:  "Please enter your Spoonacular API key.",
		})
		return
	}

	if err := svc.SetAPIKey(c.Request.Context(), value); err != nil {
		h.fail(c, svc, http.StatusInternalServerError, "Your API key could not be saved. Please try again.", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

// ClearSettings handles POST /settings/clear
func (h *Handler) ClearSettings(c *gin.Context) {
	svc := h.forProfile(c)
	if err := svc.SetAPIKey(c.Request.Context(), ""); err != nil {
		h.fail(c, svc, http.StatusInternalServerError, "Your API key could not be removed. Please try again.", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/settings?cleared=1")
}

func (h *Handler) recipeID(c *gin.Context, svc service.IRecipeService) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderer.Render(c, http.StatusNotFound, "error.html", ErrorPage{
			Layout:  h.layout(c, svc),
			Status:  http.StatusNotFound,
			Message: "That recipe does not exist.",
		})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, svc service.IRecipeService, status int, message string, err error) {
	_ = c.Error(err)
	h.renderer.Render(c, status, "error.html", ErrorPage{
		Layout:  h.layout(c, svc),
		Status:  status,
		Message: message,
	})
}

func (h *Handler) liked(c *gin.Context) likedSet {
	raw, _ := c.Cookie(LikedCookie)
	return parseLiked(raw)
}

// notice is the banner shown above demo results
func notice(outcome service.Outcome) string {
	switch {
	case !outcome.IsFallback():
		return ""
	case outcome.Reason == service.ReasonNoCredential:
		return "Showing demo recipes. Set your Spoonacular API key to search real recipes."
	default:
		return "Spoonacular could not be reached, showing demo recipes instead."
	}
}

// backTo keeps only the local part of a Referer so redirects stay on site
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
