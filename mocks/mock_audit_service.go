package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"redline/internal/service"
	"redline/internal/staging"
)

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Run(ctx context.Context, doc *staging.Staged) (*service.AuditOutput, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditOutput), args.Error(1)
}
