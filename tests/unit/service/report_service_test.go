package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/port"
	"redline/internal/service"
	"redline/mocks"
)

var sampleExtraction = json.RawMessage(`{"tenant_name": "Acme Corp", "monthly_rent": "$12,500", "risk_score": 7}`)

func TestReportService_Generate_InlineWhenArchivingDisabled(t *testing.T) {
	svc := service.NewReportService(nil, nil, &config.S3Config{})

	report, err := svc.Generate(context.Background(), "DEMO", "lease.pdf", sampleExtraction)
	assert.NoError(t, err)
	assert.Equal(t, "AUDIT_lease.xlsx", report.FileName)
	assert.NotEmpty(t, report.Content)
	assert.Nil(t, report.ID)
	assert.Empty(t, report.DownloadURL)
}

func TestReportService_Generate_Archived(t *testing.T) {
	mockRepo := new(mocks.MockReportRepo)
	mockStorage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "redline-reports", PresignExpiry: 3600}
	svc := service.NewReportService(mockRepo, mockStorage, cfg)

	mockStorage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "redline-reports" && in.Size > 0
	})).Return(&port.UploadOutput{Location: "https://s3.example/obj"}, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditReport")).Return(nil)
	mockStorage.On("GetPresignedURL", mock.Anything, "redline-reports", mock.Anything, int64(3600)).
		Return("https://s3.example/presigned", nil)

	report, err := svc.Generate(context.Background(), "DEMO", "lease.pdf", sampleExtraction)
	assert.NoError(t, err)
	assert.NotNil(t, report.ID)
	assert.Equal(t, "https://s3.example/presigned", report.DownloadURL)
	assert.NotEmpty(t, report.Content)
	mockRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestReportService_Generate_UploadFailureFallsBackInline(t *testing.T) {
	mockRepo := new(mocks.MockReportRepo)
	mockStorage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "redline-reports"}
	svc := service.NewReportService(mockRepo, mockStorage, cfg)

	mockStorage.On("Upload", mock.Anything, mock.Anything).
		Return(nil, errors.New("s3 unreachable"))

	report, err := svc.Generate(context.Background(), "DEMO", "lease.pdf", sampleExtraction)
	assert.NoError(t, err)
	assert.Nil(t, report.ID)
	assert.NotEmpty(t, report.Content)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Generate_MetadataFailureFallsBackInline(t *testing.T) {
	mockRepo := new(mocks.MockReportRepo)
	mockStorage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "redline-reports"}
	svc := service.NewReportService(mockRepo, mockStorage, cfg)

	mockStorage.On("Upload", mock.Anything, mock.Anything).
		Return(&port.UploadOutput{}, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	report, err := svc.Generate(context.Background(), "DEMO", "lease.pdf", sampleExtraction)
	assert.NoError(t, err)
	assert.Nil(t, report.ID)
	assert.NotEmpty(t, report.Content)
	mockStorage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Download_Success(t *testing.T) {
	mockRepo := new(mocks.MockReportRepo)
	mockStorage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "redline-reports"}
	svc := service.NewReportService(mockRepo, mockStorage, cfg)

	id := uuid.New()
	meta := &domain.AuditReport{
		ID:       id,
		FileName: "AUDIT_lease.xlsx",
		S3Bucket: "redline-reports",
		S3Key:    "reports/" + id.String() + "/AUDIT_lease.xlsx",
	}
	mockRepo.On("GetByID", mock.Anything, id).Return(meta, nil)
	mockStorage.On("Download", mock.Anything, meta.S3Bucket, meta.S3Key).
		Return([]byte("workbook bytes"), nil)

	got, content, err := svc.Download(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, meta, got)
	assert.Equal(t, []byte("workbook bytes"), content)
}

func TestReportService_Download_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockReportRepo)
	mockStorage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(mockRepo, mockStorage, &config.S3Config{Bucket: "b"})

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrReportNotFound)

	_, _, err := svc.Download(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
