package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"redline/internal/domain"
)

// MockAccountRepo is a mock implementation of port.AccountRepository.
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetByCode(ctx context.Context, accessCode string) (*domain.ClientAccount, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientAccount), args.Error(1)
}

func (m *MockAccountRepo) IncrementUsage(ctx context.Context, accessCode string) error {
	args := m.Called(ctx, accessCode)
	return args.Error(0)
}
