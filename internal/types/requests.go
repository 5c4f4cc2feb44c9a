package types

import (
	"time"

	"github.com/pageza/recipebrowser/internal/model"
)

// SetAPIKeyRequest represents the request body for storing a Spoonacular key
type SetAPIKeyRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// APIKeyStatusResponse reports whether the caller's profile has a key stored.
// The key itself is never returned.
type APIKeyStatusResponse struct {
	HasKey bool `json:"has_key"`
}

// SearchResponse is the JSON body of a recipe search
type SearchResponse struct {
	Source  string         `json:"source"`
	Reason  string         `json:"reason,omitempty"`
	Recipes []model.Recipe `json:"recipes"`
}

// DetailResponse is the JSON body of a recipe detail lookup
type DetailResponse struct {
	Source string       `json:"source"`
	Reason string       `json:"reason,omitempty"`
	Recipe model.Detail `json:"recipe"`
}

// ExportResponse carries the presigned URL of a published text export
type ExportResponse struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expires_at"`
}
