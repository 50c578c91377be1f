package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"redline/internal/domain"
	"redline/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a Postgres-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.AuditReport) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_reports (id, access_code, file_name, s3_bucket, s3_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		report.ID, report.AccessCode, report.FileName, report.S3Bucket, report.S3Key)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuditReport, error) {
	var report domain.AuditReport
	err := r.db.GetContext(ctx, &report,
		`SELECT id, access_code, file_name, s3_bucket, s3_key, created_at
		 FROM audit_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &report, nil
}
