package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// CustomerRepositoryPG implements domain.CustomerRepository.
type CustomerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new customer repository backed by PostgreSQL.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepositoryPG {
	return &CustomerRepositoryPG{pool: pool}
}

// Create inserts a new customer record.
func (r *CustomerRepositoryPG) Create(ctx context.Context, customer *domain.Customer) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO customers (id, honorific, name, phone)
VALUES ($1, $2, $3, $4);
`, customer.ID, customer.Honorific, customer.Name, customer.Phone)
	return err
}

// GetByID fetches a customer by its identifier.
func (r *CustomerRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, honorific, name, phone, created_at FROM customers WHERE id = $1;
`, id)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Honorific, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns customers ordered by name.
func (r *CustomerRepositoryPG) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, honorific, name, phone, created_at
FROM customers
ORDER BY name ASC
LIMIT $1 OFFSET $2;
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Honorific, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
