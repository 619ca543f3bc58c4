package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxMerchantRepository struct {
	BaseRepository
}

// newPgxMerchantRepository creates the repository for the login identity.
func newPgxMerchantRepository(pool DBPool) portsrepo.MerchantRepositoryFacade {
	return &PgxMerchantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MerchantRepositoryFacade = (*PgxMerchantRepository)(nil)

// FindMerchantByUsername retrieves the merchant record for login.
func (r *PgxMerchantRepository) FindMerchantByUsername(ctx context.Context, username string) (*domain.Merchant, error) {
	query := `
		SELECT merchant_id, username, password_hash, created_at, last_updated_at
		FROM merchants
		WHERE username = $1;
	`
	var m domain.Merchant
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&m.MerchantID,
		&m.Username,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("merchant " + username + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find merchant by username", err)
	}
	return &m, nil
}
