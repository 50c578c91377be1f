package service

import (
	"context"
	"log"

	"redline/internal/domain"
	"redline/internal/port"
)

// QuotaService is the admission gate for audit runs. Check is read-only;
// Increment is called at most once per successful extraction and never from
// inside the pipeline, so failed runs cannot consume quota.
type QuotaService interface {
	Check(ctx context.Context, accessCode string) (*domain.ClientAccount, error)
	Increment(ctx context.Context, accessCode string) error
}

type quotaService struct {
	accounts port.AccountRepository
}

// NewQuotaService creates a new QuotaService implementation.
func NewQuotaService(accounts port.AccountRepository) QuotaService {
	return &quotaService{accounts: accounts}
}

func (s *quotaService) Check(ctx context.Context, accessCode string) (*domain.ClientAccount, error) {
	acct, err := s.accounts.GetByCode(ctx, accessCode)
	if err != nil {
		return nil, err
	}
	if !acct.Active {
		return nil, domain.ErrAccountDeactivated
	}
	if acct.Used >= acct.UsageLimit {
		return nil, domain.ErrLimitReached
	}
	return acct, nil
}

func (s *quotaService) Increment(ctx context.Context, accessCode string) error {
	if err := s.accounts.IncrementUsage(ctx, accessCode); err != nil {
		log.Printf("quotaService.Increment: failed for %s: %v", accessCode, err)
		return err
	}
	return nil
}
