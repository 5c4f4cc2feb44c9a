package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "abc123", q.Get("apiKey"))
		assert.Equal(t, "pasta", q.Get("query"))
		assert.Equal(t, "5", q.Get("number"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "true", q.Get("fillIngredients"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":7,"title":"Pasta","readyInMinutes":20,"servings":2,"dishTypes":["main course"],"healthScore":44.5}],"totalResults":1}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/recipes/", 0)
	results, err := client.ComplexSearch(context.Background(), "abc123", "pasta", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].ID)
	assert.Equal(t, "Pasta", results[0].Title)
	assert.Nil(t, results[0].Diets)
	require.NotNil(t, results[0].HealthScore)
	assert.Equal(t, 44.5, *results[0].HealthScore)
}

func TestInformation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42/information", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))
		w.Write([]byte(`{"id":42,"title":"Soup","extendedIngredients":[{"id":1,"name":"water","amount":1,"unit":"l","original":"1 l water"}],"analyzedInstructions":[{"name":"","steps":[{"number":1,"step":"Boil."}]}],"nutrition":{"nutrients":[{"name":"Calories","amount":12.4,"unit":"kcal"}]}}`))
	}))
	defer ts.Close()

	recipe, err := NewClient(ts.URL, 0).Information(context.Background(), "k", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, recipe.ID)
	require.Len(t, recipe.ExtendedIngredients, 1)
	require.Len(t, recipe.AnalyzedInstructions, 1)
	assert.Equal(t, "Boil.", recipe.AnalyzedInstructions[0].Steps[0].Step)
	require.NotNil(t, recipe.Nutrition)
	assert.Equal(t, 12.4, recipe.Nutrition.Nutrients[0].Amount)
}

func TestStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"failure","code":402,"message":"Your daily points limit of 150 has been reached."}`, http.StatusPaymentRequired)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).ComplexSearch(context.Background(), "k", "q", 1)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusPaymentRequired, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "daily points limit")
}

func TestDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).Information(context.Background(), "k", 1)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestCanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ts.URL, 0).ComplexSearch(ctx, "k", "q", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("", 0).baseURL)
}
