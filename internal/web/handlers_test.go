package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/middleware"
	"github.com/pageza/recipebrowser/internal/mocks"
	"github.com/pageza/recipebrowser/internal/service"
	"github.com/pageza/recipebrowser/internal/types"
)

const testProfile = "web-test-profile"

type testEnv struct {
	router *gin.Engine
	api    *mocks.MockRecipeAPI
	keys   keystore.Backend
}

func setupRouter(t *testing.T, keys keystore.Backend) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	api := new(mocks.MockRecipeAPI)
	recipes := service.NewRecipeService(api, keystore.Scoped(keys, ""))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ProfileKey, testProfile)
		c.Next()
	})
	NewHandler(recipes, keys, service.NewSearchTracker(), renderer, false).RegisterRoutes(r)

	return &testEnv{router: r, api: api, keys: keys}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func likedCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == LikedCookie {
			return c
		}
	}
	t.Fatalf("response did not set %s", LikedCookie)
	return nil
}

func TestIndexShowsCuratedCollection(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	w := env.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Equal(t, 4, strings.Count(body, `class="recipe-card"`))
	assert.Contains(t, body, "Delicious Pasta Carbonara")
	assert.Contains(t, body, "Chocolate Chip Cookies")
	assert.Contains(t, body, "Set API Key")
	assert.NotContains(t, body, `class="notice"`)
	env.api.AssertNotCalled(t, "ComplexSearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexSearchRendersOneCardPerRecord(t *testing.T) {
	keys := keystore.NewMemory()
	require.NoError(t, keys.Put(t.Context(), testProfile, "abc123"))
	env := setupRouter(t, keys)

	env.api.On("ComplexSearch", mock.Anything, "abc123", "pasta", service.DefaultSearchLimit).Return([]types.SpoonacularRecipe{
		{ID: 10, Title: "Pasta Primavera", ReadyInMinutes: 25, Servings: 2, DishTypes: []string{"lunch", "main course", "dinner", "main dish"}},
		{ID: 11, Title: "Pasta Aglio e Olio", ReadyInMinutes: 15, Servings: 3, DishTypes: []string{"side dish"}},
	}, nil)

	w := env.get("/?q=pasta")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Equal(t, 2, strings.Count(body, `class="recipe-card"`))
	assert.Contains(t, body, "Pasta Primavera")
	assert.Contains(t, body, "25min")
	assert.Contains(t, body, "2 servings")
	assert.Contains(t, body, "Pasta Aglio e Olio")
	assert.Contains(t, body, "15min")
	assert.Contains(t, body, "3 servings")
	assert.Equal(t, 4, strings.Count(body, `class="badge"`))
	assert.NotContains(t, body, "main dish")
	assert.Contains(t, body, "API Key Set")
	assert.NotContains(t, body, `class="notice"`)
	env.api.AssertExpectations(t)
}

func TestIndexSearchFallbackShowsNotice(t *testing.T) {
	keys := keystore.NewMemory()
	require.NoError(t, keys.Put(t.Context(), testProfile, "abc123"))
	env := setupRouter(t, keys)

	env.api.On("ComplexSearch", mock.Anything, "abc123", "tacos", service.DefaultSearchLimit).
		Return(nil, errors.New("connection refused"))

	w := env.get("/?q=tacos")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 4, strings.Count(body, `class="recipe-card"`))
	assert.Contains(t, body, "Spoonacular could not be reached")
}

func TestIndexSearchWithoutKeyShowsNotice(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	w := env.get("/?q=tacos")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Set your Spoonacular API key")
	env.api.AssertNotCalled(t, "ComplexSearch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDetailShowsDemoRecipe(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	w := env.get("/recipes/4?q=cookies")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Chocolate Chip Cookies")
	assert.Contains(t, body, "25 minutes")
	assert.Contains(t, body, "12 servings")
	assert.Contains(t, body, "Ingredients")
	assert.Contains(t, body, "Instructions")
	assert.Contains(t, body, "Nutrition Information")
	assert.Contains(t, body, "425kcal")
	assert.Contains(t, body, `href="/?q=cookies"`)
}

func TestDetailSanitizesSummary(t *testing.T) {
	keys := keystore.NewMemory()
	require.NoError(t, keys.Put(t.Context(), testProfile, "abc123"))
	env := setupRouter(t, keys)

	env.api.On("Information", mock.Anything, "abc123", 77).Return(&types.SpoonacularRecipe{
		ID:      77,
		Title:   "Risotto",
		Summary: `A <b>creamy</b> risotto<script>alert(1)</script>.`,
	}, nil)

	w := env.get("/recipes/77")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "A <b>creamy</b> risotto.")
	assert.NotContains(t, body, "alert(1)")
}

func TestDetailUnknownID(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	for _, path := range []string{"/recipes/abc", "/recipes/0", "/recipes/-3"} {
		w := env.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "That recipe does not exist.")
	}
}

func TestToggleLike(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/recipes/2/like", nil)
	req.Header.Set("Referer", "http://localhost:8080/?q=salad")
	w := env.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?q=salad", w.Header().Get("Location"))

	cookie := likedCookie(t, w)
	assert.Equal(t, "2", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	body := env.do(req).Body.String()
	assert.Equal(t, 1, strings.Count(body, "Liked</button>"))

	req = httptest.NewRequest(http.MethodPost, "/recipes/2/like", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "", likedCookie(t, w).Value)
}

func TestDownload(t *testing.T) {
	env := setupRouter(t, keystore.NewMemory())

	w := env.get("/recipes/4/download")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Chocolate_Chip_Cookies.txt"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Chocolate Chip Cookies\n\nReady in: 25 minutes\nServings: 12\n\n"))
}

func TestSettingsSaveAndClear(t *testing.T) {
	keys := keystore.NewMemory()
	env := setupRouter(t, keys)

	w := env.get("/settings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Spoonacular API Configuration")
	assert.Contains(t, w.Body.String(), "No API key is set.")

	w = env.postForm("/settings", url.Values{"api_key": {"  secret-key  "}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?saved=1", w.Header().Get("Location"))

	stored, err := keys.Fetch(t.Context(), testProfile)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", stored)

	w = env.get("/settings?saved=1")
	body := w.Body.String()
	assert.Contains(t, body, "Your API key has been saved.")
	assert.Contains(t, body, "API Key Set")
	assert.NotContains(t, body, "secret-key")

	w = env.postForm("/settings/clear", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?cleared=1", w.Header().Get("Location"))

	stored, err = keys.Fetch(t.Context(), testProfile)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSettingsRejectsEmptyKey(t *testing.T) {
	keys := keystore.NewMemory()
	env := setupRouter(t, keys)

	w := env.postForm("/settings", url.Values{"api_key": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your Spoonacular API key.")

	stored, err := keys.Fetch(t.Context(), testProfile)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSettingsKeyStoreFailure(t *testing.T) {
	backend := new(mocks.MockBackend)
	backend.On("Fetch", mock.Anything, testProfile).Return("", nil)
	backend.On("Put", mock.Anything, testProfile, "secret-key").Return(errors.New("disk full"))
	env := setupRouter(t, backend)

	w := env.postForm("/settings", url.Values{"api_key": {"secret-key"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Your API key could not be saved.")
	backend.AssertExpectations(t)
}

func TestBackTo(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://localhost:8080/?q=pasta", "/?q=pasta"},
		{"http://localhost:8080/recipes/3?q=pizza", "/recipes/3?q=pizza"},
		{"https://evil.example//attacker", "/"},
		{"not a url %%", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, backTo(tt.referer), tt.referer)
	}
}

func TestLikedSet(t *testing.T) {
	set := parseLiked("3.1.x.-2.0.3")
	assert.Equal(t, "1.3", set.String())

	assert.True(t, set.toggle(7))
	assert.False(t, set.toggle(1))
	assert.Equal(t, "3.7", set.String())

	assert.Empty(t, parseLiked("").String())
}
