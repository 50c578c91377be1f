package port

import (
	"context"

	"github.com/google/uuid"

	"redline/internal/domain"
)

// AccountRepository abstracts access to the client usage ledger.
type AccountRepository interface {
	// GetByCode returns the account for an access code, or
	// domain.ErrAccessCodeNotFound / domain.ErrStoreUnavailable.
	GetByCode(ctx context.Context, accessCode string) (*domain.ClientAccount, error)
	// IncrementUsage atomically adds 1 to the account's used counter.
	IncrementUsage(ctx context.Context, accessCode string) error
}

// ReportRepository abstracts persistence of archived report metadata.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.AuditReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AuditReport, error)
}
