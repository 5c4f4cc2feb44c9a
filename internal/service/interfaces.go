package service

import (
	"context"

	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/model"
	"github.com/pageza/recipebrowser/internal/types"
)

// RecipeAPI is the remote recipe API used by RecipeService.
// *spoonacular.Client implements it.
type RecipeAPI interface {
	ComplexSearch(ctx context.Context, apiKey, query string, number int) ([]types.SpoonacularRecipe, error)
	Information(ctx context.Context, apiKey string, id int) (*types.SpoonacularRecipe, error)
}

// IRecipeService defines the fetch contract used by the web and API layers
type IRecipeService interface {
	Search(ctx context.Context, query string, limit int) SearchResult
	Details(ctx context.Context, id int) DetailResult
	HasAPIKey(ctx context.Context) bool
	SetAPIKey(ctx context.Context, value string) error
	WithKeys(keys keystore.Store) IRecipeService
}

// IExportService publishes text exports somewhere downloadable
type IExportService interface {
	Publish(ctx context.Context, recipe model.Recipe) (*Export, error)
}
