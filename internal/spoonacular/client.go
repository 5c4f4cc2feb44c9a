// Package spoonacular is a minimal client for the two read-only Spoonacular
// recipe endpoints used by the browser: complexSearch and information.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/recipebrowser/internal/types"
)

// DefaultBaseURL is the public Spoonacular recipes API
const DefaultBaseURL = "https://api.spoonacular.com/recipes"

// maxErrorBody bounds how much of a failed response is kept in StatusError
const maxErrorBody = 512

// StatusError is returned when Spoonacular answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spoonacular request failed with status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a 2xx response body is not the expected JSON
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode spoonacular response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Client issues requests against a Spoonacular-compatible base URL
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client. A zero timeout leaves requests bounded only by
// their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ComplexSearch runs GET /complexSearch with full recipe information
func (c *Client) ComplexSearch(ctx context.Context, apiKey, query string, number int) ([]types.SpoonacularRecipe, error) {
	params := url.Values{}
	params.Set("apiKey", apiKey)
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")

	var resp types.ComplexSearchResponse
	if err := c.get(ctx, "/complexSearch", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Information runs GET /{id}/information with nutrition included
func (c *Client) Information(ctx context.Context, apiKey string, id int) (*types.SpoonacularRecipe, error) {
	params := url.Values{}
	params.Set("apiKey", apiKey)
	params.Set("includeNutrition", "true")

	var recipe types.SpoonacularRecipe
	if err := c.get(ctx, fmt.Sprintf("/%d/information", id), params, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
