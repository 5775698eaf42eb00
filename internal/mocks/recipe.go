package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/dishcovery/backend/internal/model"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockRecipeService) Generate(ctx context.Context, clientID string, ingredients []string, surprise bool) ([]model.Recipe, error) {
	args := m.Called(ctx, clientID, ingredients, surprise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Get mocks the Get method
func (m *MockRecipeService) Get(ctx context.Context, clientID, id string) (*model.Recipe, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// ByCuisine mocks the ByCuisine method
func (m *MockRecipeService) ByCuisine(ctx context.Context, cuisine string) ([]model.Recipe, error) {
	args := m.Called(ctx, cuisine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Search mocks the Search method
func (m *MockRecipeService) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// Substitutions mocks the Substitutions method
func (m *MockRecipeService) Substitutions(ctx context.Context, ingredient string) ([]string, error) {
	args := m.Called(ctx, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Suggest mocks the Suggest method
func (m *MockRecipeService) Suggest(ctx context.Context, ingredients []string) (string, error) {
	args := m.Called(ctx, ingredients)
	return args.String(0), args.Error(1)
}

// Cuisines mocks the Cuisines method
func (m *MockRecipeService) Cuisines(ctx context.Context) ([]model.Cuisine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cuisine), args.Error(1)
}
