package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"redline/internal/domain"
	"redline/internal/port"
)

// MockInferenceClient is a mock implementation of port.InferenceClient.
type MockInferenceClient struct {
	mock.Mock
}

func (m *MockInferenceClient) Upload(ctx context.Context, content []byte, displayName, contentType string) (*port.RemoteFile, error) {
	args := m.Called(ctx, content, displayName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RemoteFile), args.Error(1)
}

func (m *MockInferenceClient) GetState(ctx context.Context, name string) (domain.RemoteFileState, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.RemoteFileState), args.Error(1)
}

func (m *MockInferenceClient) Generate(ctx context.Context, file *port.RemoteFile, instruction string) (string, error) {
	args := m.Called(ctx, file, instruction)
	return args.String(0), args.Error(1)
}

func (m *MockInferenceClient) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
