package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/service"
)

// MockLLMService is a mock implementation of the generative-text service
type MockLLMService struct {
	mock.Mock
}

func (m *MockLLMService) Generate(ctx context.Context, prompt string, schema *service.Schema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

// MockVideoService is a mock implementation of the video search service
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) Search(ctx context.Context, title string) ([]model.Video, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}
