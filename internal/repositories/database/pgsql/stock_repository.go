package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/SscSPs/bullion_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for standalone stock lot access.
func newPgxStockRepository(pool DBPool) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

// AddLot inserts a stock lot outside any transaction unit.
func (r *PgxStockRepository) AddLot(ctx context.Context, lot domain.StockLot) error {
	query := `
		INSERT INTO stock_lots (stock_id, denomination, weight, touch, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, lot.StockID, string(lot.Denomination), lot.Weight, lot.Touch, lot.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "stock lot "+lot.StockID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert stock lot "+lot.StockID, err)
	}
	return nil
}

// ListLotsByType retrieves the on-hand lots of a denomination in FIFO order.
func (r *PgxStockRepository) ListLotsByType(ctx context.Context, denomination domain.Denomination) ([]domain.StockLot, error) {
	query := `
		SELECT stock_id, denomination, weight, touch, created_at
		FROM stock_lots
		WHERE denomination = $1
		ORDER BY created_at ASC, stock_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(denomination))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock lots for "+string(denomination), err)
	}
	defer rows.Close()

	lots := []domain.StockLot{}
	for rows.Next() {
		var m models.StockLot
		if err := rows.Scan(&m.StockID, &m.Denomination, &m.Weight, &m.Touch, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock lot row", err)
		}
		lots = append(lots, mapping.ToDomainStockLot(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock lot rows", err)
	}
	return lots, nil
}

// FindLotByID retrieves a stock lot by its ID.
func (r *PgxStockRepository) FindLotByID(ctx context.Context, stockID string) (*domain.StockLot, error) {
	query := `
		SELECT stock_id, denomination, weight, touch, created_at
		FROM stock_lots
		WHERE stock_id = $1;
	`
	var m models.StockLot
	err := r.Pool.QueryRow(ctx, query, stockID).Scan(&m.StockID, &m.Denomination, &m.Weight, &m.Touch, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("stock lot " + stockID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find stock lot by ID "+stockID, err)
	}
	lot := mapping.ToDomainStockLot(m)
	return &lot, nil
}
