package mocks

import (
	"context"

	"github.com/pageza/recipebrowser/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeAPI is a mock implementation of the remote recipe API
type MockRecipeAPI struct {
	mock.Mock
}

// ComplexSearch mocks the ComplexSearch method
func (m *MockRecipeAPI) ComplexSearch(ctx context.Context, apiKey, query string, number int) ([]types.SpoonacularRecipe, error) {
	args := m.Called(ctx, apiKey, query, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.SpoonacularRecipe), args.Error(1)
}

// Information mocks the Information method
func (m *MockRecipeAPI) Information(ctx context.Context, apiKey string, id int) (*types.SpoonacularRecipe, error) {
	args := m.Called(ctx, apiKey, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SpoonacularRecipe), args.Error(1)
}
