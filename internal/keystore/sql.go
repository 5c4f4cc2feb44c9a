package keystore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebrowser/internal/model"
)

// SQL stores credentials in the credentials table through GORM. It works
// with both the sqlite and postgres dialectors.
type SQL struct {
	db *gorm.DB
}

// NewSQL creates a backend on a migrated database handle
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Put(ctx context.Context, profile, value string) error {
	cred := model.Credential{ProfileID: profile, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&cred).Error
	if err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}
	return nil
}

func (s *SQL) Fetch(ctx context.Context, profile string) (string, error) {
	var cred model.Credential
	err := s.db.WithContext(ctx).First(&cred, "profile_id = ?", profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return cred.Value, nil
}
