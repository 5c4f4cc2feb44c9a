package model

import "time"

// Credential is the persisted API key of one browser profile.
type Credential struct {
	ProfileID string    `gorm:"primaryKey;size:64" json:"profile_id"`
	Value     string    `gorm:"type:text;not null;default:''" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Credential) TableName() string {
	return "credentials"
}
