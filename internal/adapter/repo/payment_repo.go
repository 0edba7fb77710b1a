package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// PaymentRepositoryPG implements domain.PaymentRepository.
type PaymentRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository backed by PostgreSQL.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{pool: pool}
}

// Create appends a payment record. Payments are immutable once written.
func (r *PaymentRepositoryPG) Create(ctx context.Context, payment *domain.Payment) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO payments (id, job_id, amount, method, note)
VALUES ($1, $2, $3, $4, $5);
`, payment.ID, payment.JobID, payment.Amount, payment.Method, payment.Note)
	return err
}

// Delete removes a payment record whole. There are no partial edits.
func (r *PaymentRepositoryPG) Delete(ctx context.Context, paymentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1;`, paymentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByJobID returns all payments recorded against a job, oldest first.
func (r *PaymentRepositoryPG) ListByJobID(ctx context.Context, jobID string) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, job_id, amount, method, note, created_at
FROM payments
WHERE job_id = $1
ORDER BY created_at ASC;
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.JobID, &p.Amount, &p.Method, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
