package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/port"
	"redline/internal/xlsxreport"
)

// GeneratedReport is the encoded audit artifact. When archiving is enabled
// the workbook lives in S3 and ID/DownloadURL are set; otherwise Content
// carries the bytes inline.
type GeneratedReport struct {
	FileName    string
	Content     []byte
	ID          *uuid.UUID
	DownloadURL string
}

// ReportService turns extraction results into XLSX artifacts and serves
// archived ones back.
type ReportService interface {
	Generate(ctx context.Context, accessCode, sourceName string, data json.RawMessage) (*GeneratedReport, error)
	Download(ctx context.Context, reportID uuid.UUID) (*domain.AuditReport, []byte, error)
}

type reportService struct {
	reports port.ReportRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewReportService creates a new ReportService. storage may be nil, which
// disables archiving.
func NewReportService(reports port.ReportRepository, storage port.ObjectStorage, cfg *config.S3Config) ReportService {
	return &reportService{reports: reports, storage: storage, cfg: cfg}
}

func (s *reportService) archiveEnabled() bool {
	return s.storage != nil && s.cfg != nil && s.cfg.Bucket != ""
}

func (s *reportService) Generate(ctx context.Context, accessCode, sourceName string, data json.RawMessage) (*GeneratedReport, error) {
	content, err := xlsxreport.Build(domain.DecodeLeaseExtraction(data))
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	report := &GeneratedReport{
		FileName: xlsxreport.BuildFilename(sourceName),
		Content:  content,
	}

	if !s.archiveEnabled() {
		return report, nil
	}

	// Archiving is best-effort like usage recording: on any failure the
	// caller still gets the inline workbook.
	id := uuid.New()
	key := fmt.Sprintf("reports/%s/%s", id, report.FileName)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: xlsxreport.ContentType,
		Size:        int64(len(content)),
	}); err != nil {
		log.Printf("reportService.Generate: archive upload failed: %v", err)
		return report, nil
	}

	meta := &domain.AuditReport{
		ID:         id,
		AccessCode: accessCode,
		FileName:   report.FileName,
		S3Bucket:   s.cfg.Bucket,
		S3Key:      key,
	}
	if err := s.reports.Create(ctx, meta); err != nil {
		log.Printf("reportService.Generate: failed to save report metadata: %v", err)
		return report, nil
	}

	report.ID = &id
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		log.Printf("reportService.Generate: presign failed for %s: %v", id, err)
	} else {
		report.DownloadURL = url
	}
	return report, nil
}

func (s *reportService) Download(ctx context.Context, reportID uuid.UUID) (*domain.AuditReport, []byte, error) {
	meta, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if s.storage == nil {
		return nil, nil, domain.ErrReportNotFound
	}
	content, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return nil, nil, fmt.Errorf("downloading report %s: %w", reportID, err)
	}
	return meta, content, nil
}
