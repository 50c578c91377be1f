package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"redline/internal/domain"
)

// MockQuotaService is a mock implementation of service.QuotaService.
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) Check(ctx context.Context, accessCode string) (*domain.ClientAccount, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientAccount), args.Error(1)
}

func (m *MockQuotaService) Increment(ctx context.Context, accessCode string) error {
	args := m.Called(ctx, accessCode)
	return args.Error(0)
}
