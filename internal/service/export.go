package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
	"github.com/pageza/recipebrowser/internal/markup"
	"github.com/pageza/recipebrowser/internal/model"
)

// ExportURLExpiry is how long a published export link stays valid
const ExportURLExpiry = 15 * time.Minute

// DownloadFilename derives the export file name from a recipe title. Every
// UTF-16 code unit outside [A-Za-z0-9] becomes an underscore, so characters
// outside the Basic Multilingual Plane yield two.
func DownloadFilename(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(strings.Repeat("_", max(utf16.RuneLen(r), 1)))
	}
	return sb.String() + ".txt"
}

// DownloadText renders the plain-text export of a recipe summary
func DownloadText(recipe model.Recipe) string {
	summary, err := markup.ToText(recipe.Summary)
	if err != nil {
		slog.Warn("failed to convert summary markup", "component", "export", "recipe_id", recipe.ID, "error", err)
	}

	var sb strings.Builder
	sb.WriteString(recipe.Title)
	sb.WriteString("\n\nReady in: ")
	sb.WriteString(strconv.Itoa(recipe.ReadyInMinutes))
	sb.WriteString(" minutes\nServings: ")
	sb.WriteString(strconv.Itoa(recipe.Servings))
	sb.WriteString("\n\n")
	sb.WriteString(summary)
	return sb.String()
}

// ObjectStore is the blob storage used to publish exports.
// *config.S3Config implements it.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// Export describes a published text export
type Export struct {
	Key       string
	Filename  string
	URL       string
	ExpiresAt time.Time
}

// ExportService uploads text exports and hands out temporary links
type ExportService struct {
	store ObjectStore
	now   func() time.Time
}

var _ IExportService = (*ExportService)(nil)

// NewExportService creates a new ExportService instance
func NewExportService(store ObjectStore) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// Publish uploads the export of recipe and returns a presigned download link
func (s *ExportService) Publish(ctx context.Context, recipe model.Recipe) (*Export, error) {
	filename := DownloadFilename(recipe.Title)
	key := fmt.Sprintf("exports/%s/%s", uuid.New().String(), filename)

	if err := s.store.Put(ctx, key, "text/plain; charset=utf-8", []byte(DownloadText(recipe))); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	return &Export{
		Key:       key,
		Filename:  filename,
		URL:       url,
		ExpiresAt: s.now().Add(ExportURLExpiry),
	}, nil
}
