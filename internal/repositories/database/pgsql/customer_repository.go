package pgsql

import (
	"errors"

	"context"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/bullion_books_app/internal/models"
	"github.com/SscSPs/bullion_books_app/internal/platform/cache"
	"github.com/SscSPs/bullion_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxCustomerRepository struct {
	BaseRepository
	readCache *cache.ReadCache
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool DBPool, readCache *cache.ReadCache) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		readCache:      readCache,
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// SaveCustomer inserts a customer together with its zero metal balance rows.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO customers (customer_id, name, balance, last_transaction_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Balance,
		customer.LastTransactionAt,
		customer.CreatedAt,
		customer.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "customer "+customer.CustomerID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert customer "+customer.CustomerID, err)
	}

	batch := &pgx.Batch{}
	metalQuery := `
		INSERT INTO customer_metal_balances (customer_id, denomination, balance)
		VALUES ($1, $2, $3);
	`
	for _, d := range domain.Denominations {
		balance := decimal.Zero
		if v, ok := customer.MetalBalances[d]; ok {
			balance = v
		}
		batch.Queue(metalQuery, customer.CustomerID, string(d), balance)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert metal balances for customer "+customer.CustomerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.readCache.EvictCustomer(customer.CustomerID)
	return nil
}

// FindCustomerByID retrieves a customer and their metal balances.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if cached, ok := r.readCache.GetCustomer(customerID); ok {
		return &cached, nil
	}

	query := `
		SELECT customer_id, name, balance, last_transaction_at, created_at, last_updated_at
		FROM customers
		WHERE customer_id = $1;
	`
	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.Name,
		&m.Balance,
		&m.LastTransactionAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer " + customerID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	metals, err := r.metalBalances(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer := mapping.ToDomainCustomer(m, metals)
	r.readCache.SetCustomer(customer)
	return &customer, nil
}

func (r *PgxCustomerRepository) metalBalances(ctx context.Context, customerID string) ([]models.MetalBalance, error) {
	query := `
		SELECT customer_id, denomination, balance
		FROM customer_metal_balances
		WHERE customer_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query metal balances for customer "+customerID, err)
	}
	defer rows.Close()

	metals := []models.MetalBalance{}
	for rows.Next() {
		var mb models.MetalBalance
		if err := rows.Scan(&mb.CustomerID, &mb.Denomination, &mb.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan metal balance row for customer "+customerID, err)
		}
		metals = append(metals, mb)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating metal balance rows for customer "+customerID, err)
	}
	return metals, nil
}

// ListCustomers retrieves every customer with their metal balances.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, name, balance, last_transaction_at, created_at, last_updated_at
		FROM customers
		ORDER BY name, customer_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var m models.Customer
		if err := rows.Scan(&m.CustomerID, &m.Name, &m.Balance, &m.LastTransactionAt, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}

	metalQuery := `
		SELECT customer_id, denomination, balance
		FROM customer_metal_balances;
	`
	metalRows, err := r.Pool.Query(ctx, metalQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query metal balances", err)
	}
	defer metalRows.Close()

	metalsByCustomer := map[string][]models.MetalBalance{}
	for metalRows.Next() {
		var mb models.MetalBalance
		if err := metalRows.Scan(&mb.CustomerID, &mb.Denomination, &mb.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan metal balance row", err)
		}
		metalsByCustomer[mb.CustomerID] = append(metalsByCustomer[mb.CustomerID], mb)
	}
	if err := metalRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating metal balance rows", err)
	}

	out := make([]domain.Customer, len(customers))
	for i, m := range customers {
		out[i] = mapping.ToDomainCustomer(m, metalsByCustomer[m.CustomerID])
	}
	return out, nil
}

// SumBalances aggregates every customer's money and metal balances.
func (r *PgxCustomerRepository) SumBalances(ctx context.Context) (domain.BalanceSums, error) {
	sums := domain.BalanceSums{Metals: domain.ZeroMetals()}

	moneyQuery := `SELECT COALESCE(SUM(balance), 0) FROM customers;`
	if err := r.Pool.QueryRow(ctx, moneyQuery).Scan(&sums.Money); err != nil {
		return domain.BalanceSums{}, apperrors.NewAppError(500, "failed to sum customer balances", err)
	}

	metalQuery := `
		SELECT denomination, COALESCE(SUM(balance), 0)
		FROM customer_metal_balances
		GROUP BY denomination;
	`
	rows, err := r.Pool.Query(ctx, metalQuery)
	if err != nil {
		return domain.BalanceSums{}, apperrors.NewAppError(500, "failed to sum customer metal balances", err)
	}
	defer rows.Close()

	for rows.Next() {
		var denomination string
		var total decimal.Decimal
		if err := rows.Scan(&denomination, &total); err != nil {
			return domain.BalanceSums{}, apperrors.NewAppError(500, "failed to scan metal balance sum row", err)
		}
		sums.Metals[domain.Denomination(denomination)] = total
	}
	if err := rows.Err(); err != nil {
		return domain.BalanceSums{}, apperrors.NewAppError(500, "error iterating metal balance sum rows", err)
	}

	return sums, nil
}
