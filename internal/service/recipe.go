package service

import (
	"context"
	"log/slog"

	"github.com/pageza/recipebrowser/internal/demo"
	"github.com/pageza/recipebrowser/internal/keystore"
	"github.com/pageza/recipebrowser/internal/metrics"
	"github.com/pageza/recipebrowser/internal/model"
)

// DefaultSearchLimit is used when Search is called with a non-positive limit
const DefaultSearchLimit = 12

// RecipeService fetches recipes from the remote API when a credential is
// stored and falls back to the demo dataset otherwise. It never returns an
// error; the outcome is carried by the result tag instead.
type RecipeService struct {
	api    RecipeAPI
	keys   keystore.Store
	logger *slog.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(api RecipeAPI, keys keystore.Store) *RecipeService {
	return &RecipeService{
		api:    api,
		keys:   keys,
		logger: slog.Default().With("component", "recipe-service"),
	}
}

// WithKeys returns a copy of the service bound to another credential store
func (s *RecipeService) WithKeys(keys keystore.Store) IRecipeService {
	clone := *s
	clone.keys = keys
	return &clone
}

// HasAPIKey reports whether a non-empty credential is stored. A failing key
// store reads as "no key".
func (s *RecipeService) HasAPIKey(ctx context.Context) bool {
	ok, err := s.keys.Has(ctx)
	if err != nil {
		s.logger.Warn("failed to check api key", "error", err)
		return false
	}
	return ok
}

// SetAPIKey persists the credential, overwriting any previous value
func (s *RecipeService) SetAPIKey(ctx context.Context, value string) error {
	return s.keys.Set(ctx, value)
}

// Search looks up recipes matching query. Without a credential, or when the
// remote call fails, the four demo recipes are returned in fixed order.
func (s *RecipeService) Search(ctx context.Context, query string, limit int) SearchResult {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	apiKey, outcome, ok := s.credential(ctx, "search")
	if !ok {
		return SearchResult{Outcome: outcome, Recipes: demo.Recipes()}
	}

	records, err := s.api.ComplexSearch(ctx, apiKey, query, limit)
	if err != nil {
		outcome := s.absorb("search", err)
		return SearchResult{Outcome: outcome, Recipes: demo.Recipes()}
	}

	recipes := make([]model.Recipe, 0, len(records))
	for _, record := range records {
		recipes = append(recipes, toRecipe(record))
	}

	s.record("search", live())
	return SearchResult{Outcome: live(), Recipes: recipes}
}

// Details fetches the full record of one recipe, or the demo detail body
func (s *RecipeService) Details(ctx context.Context, id int) DetailResult {
	apiKey, outcome, ok := s.credential(ctx, "details")
	if !ok {
		return DetailResult{Outcome: outcome, Recipe: demo.Detail(id)}
	}

	record, err := s.api.Information(ctx, apiKey, id)
	if err != nil {
		outcome := s.absorb("details", err)
		return DetailResult{Outcome: outcome, Recipe: demo.Detail(id)}
	}

	s.record("details", live())
	return DetailResult{Outcome: live(), Recipe: toDetail(*record)}
}

// credential reads the stored key. ok is false when the caller must fall back,
// in which case outcome says why.
func (s *RecipeService) credential(ctx context.Context, operation string) (string, Outcome, bool) {
	apiKey, err := s.keys.Get(ctx)
	if err != nil {
		s.logger.Error("key store unavailable, using demo data", "operation", operation, "error", err)
		outcome := fallback(ReasonKeyStore, err)
		s.record(operation, outcome)
		return "", outcome, false
	}
	if apiKey == "" {
		outcome := fallback(ReasonNoCredential, nil)
		s.record(operation, outcome)
		return "", outcome, false
	}
	return apiKey, Outcome{}, true
}

func (s *RecipeService) absorb(operation string, err error) Outcome {
	outcome := fallback(classify(err), err)
	if outcome.Reason == ReasonCanceled {
		s.logger.Debug("recipe request canceled", "operation", operation)
	} else {
		s.logger.Error("recipe request failed, using demo data",
			"operation", operation, "reason", string(outcome.Reason), "error", err)
	}
	s.record(operation, outcome)
	return outcome
}

func (s *RecipeService) record(operation string, outcome Outcome) {
	metrics.FetchTotal.WithLabelValues(operation, string(outcome.Source), string(outcome.Reason)).Inc()
}
