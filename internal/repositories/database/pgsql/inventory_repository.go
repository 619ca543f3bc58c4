package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates the repository for the single adjusted
// base inventory row.
func newPgxInventoryRepository(pool DBPool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// GetBaseInventory retrieves the stored adjusted base figure.
func (r *PgxInventoryRepository) GetBaseInventory(ctx context.Context) (*domain.BaseInventory, error) {
	query := `
		SELECT money, gold999, gold995, silver, rani, rupu, adjusted_at
		FROM base_inventory
		WHERE id = 1;
	`
	var m models.BaseInventory
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.Money, &m.Gold999, &m.Gold995, &m.Silver, &m.Rani, &m.Rupu, &m.AdjustedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("base inventory not set")
		}
		return nil, apperrors.NewAppError(500, "failed to read base inventory", err)
	}

	return &domain.BaseInventory{
		Money: m.Money,
		Metals: map[domain.Denomination]decimal.Decimal{
			domain.Gold999: m.Gold999,
			domain.Gold995: m.Gold995,
			domain.Silver:  m.Silver,
			domain.Rani:    m.Rani,
			domain.Rupu:    m.Rupu,
		},
		AdjustedAt: m.AdjustedAt,
	}, nil
}

// SetBaseInventory upserts the single adjusted base inventory row.
func (r *PgxInventoryRepository) SetBaseInventory(ctx context.Context, base domain.BaseInventory) error {
	query := `
		INSERT INTO base_inventory (id, money, gold999, gold995, silver, rani, rupu, adjusted_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET money = EXCLUDED.money,
		              gold999 = EXCLUDED.gold999,
		              gold995 = EXCLUDED.gold995,
		              silver = EXCLUDED.silver,
		              rani = EXCLUDED.rani,
		              rupu = EXCLUDED.rupu,
		              adjusted_at = EXCLUDED.adjusted_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		base.Money,
		base.Metals[domain.Gold999],
		base.Metals[domain.Gold995],
		base.Metals[domain.Silver],
		base.Metals[domain.Rani],
		base.Metals[domain.Rupu],
		base.AdjustedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to store base inventory", err)
	}
	return nil
}
