package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"redline/internal/domain"
	"redline/internal/port"
)

type accountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a Postgres-backed AccountRepository.
func NewAccountRepo(db *sqlx.DB) port.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) GetByCode(ctx context.Context, accessCode string) (*domain.ClientAccount, error) {
	var acct domain.ClientAccount
	err := r.db.GetContext(ctx, &acct,
		`SELECT access_code, usage_limit, used, active, created_at, updated_at
		 FROM client_accounts WHERE access_code = $1`, accessCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccessCodeNotFound
		}
		return nil, fmt.Errorf("%w: accountRepo.GetByCode: %v", domain.ErrStoreUnavailable, err)
	}
	return &acct, nil
}

// IncrementUsage is a server-side atomic add, so concurrent sessions for the
// same access code cannot lose updates.
func (r *accountRepo) IncrementUsage(ctx context.Context, accessCode string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE client_accounts SET used = used + 1, updated_at = NOW()
		 WHERE access_code = $1`, accessCode)
	if err != nil {
		return fmt.Errorf("%w: accountRepo.IncrementUsage: %v", domain.ErrStoreUnavailable, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAccessCodeNotFound
	}
	return nil
}
