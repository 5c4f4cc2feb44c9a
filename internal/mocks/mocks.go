package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of keystore.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Put(ctx context.Context, profile, value string) error {
	args := m.Called(ctx, profile, value)
	return args.Error(0)
}

func (m *MockBackend) Fetch(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

// MockObjectStore is a mock implementation of the export object store
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}
