// Package keystore persists the Spoonacular API key of each browser profile.
//
// A Backend holds values for every profile; Scoped narrows it to the
// Store contract used by the recipe service: Set overwrites, Get returns
// "" when nothing is stored, and Has reports whether Get is non-empty. The
// empty string is a legal value and reads back as "absent".
package keystore

import (
	"context"
	"fmt"
)

// Store is the credential contract for a single profile.
type Store interface {
	Set(ctx context.Context, value string) error
	Get(ctx context.Context) (string, error)
	Has(ctx context.Context) (bool, error)
}

// Backend stores credentials for many profiles.
type Backend interface {
	Put(ctx context.Context, profile, value string) error
	// Fetch returns "" and a nil error when the profile has no credential.
	Fetch(ctx context.Context, profile string) (string, error)
}

type scoped struct {
	backend Backend
	profile string
}

// Scoped returns the Store of one profile.
func Scoped(backend Backend, profile string) Store {
	return &scoped{backend: backend, profile: profile}
}

func (s *scoped) Set(ctx context.Context, value string) error {
	if err := s.backend.Put(ctx, s.profile, value); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	return nil
}

func (s *scoped) Get(ctx context.Context) (string, error) {
	value, err := s.backend.Fetch(ctx, s.profile)
	if err != nil {
		return "", fmt.Errorf("failed to read api key: %w", err)
	}
	return value, nil
}

func (s *scoped) Has(ctx context.Context) (bool, error) {
	value, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return value != "", nil
}
