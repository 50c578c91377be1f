package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"redline/internal/domain"
	"redline/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, accessCode, sourceName string, data json.RawMessage) (*service.GeneratedReport, error) {
	args := m.Called(ctx, accessCode, sourceName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedReport), args.Error(1)
}

func (m *MockReportService) Download(ctx context.Context, reportID uuid.UUID) (*domain.AuditReport, []byte, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.AuditReport), args.Get(1).([]byte), args.Error(2)
}
