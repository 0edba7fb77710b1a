package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// JobRepositoryPG implements domain.JobRepository.
type JobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(pool *pgxpool.Pool) *JobRepositoryPG {
	return &JobRepositoryPG{pool: pool}
}

// Create inserts a new job record along with its finish selections.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.JobSpec) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
INSERT INTO jobs (id, customer_id, name, product_kind, reference_id, card_group, flyer_size, flyer_print_mode,
                  quantity_thousands, slot_occupancy, halved, outsourced, discount, observations, image_ref, estado)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`
	_, err = tx.Exec(ctx, query,
		job.ID,
		job.CustomerID,
		job.Name,
		job.Product.Kind,
		job.Product.ReferenceID,
		job.Product.Group,
		job.Product.Size,
		job.Product.PrintMode,
		job.QuantityThousands,
		job.SlotOccupancy,
		job.Halved,
		job.Outsourced,
		job.Discount,
		job.Observations,
		job.ImageRef,
		job.Status,
	)
	if err != nil {
		return err
	}
	if err := replaceFinishes(ctx, tx, job.ID, job.Finishes); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the job's editable specification fields.
func (r *JobRepositoryPG) Update(ctx context.Context, job *domain.JobSpec) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
UPDATE jobs
SET name = $2,
    product_kind = $3,
    reference_id = $4,
    card_group = $5,
    flyer_size = $6,
    flyer_print_mode = $7,
    quantity_thousands = $8,
    slot_occupancy = $9,
    halved = $10,
    outsourced = $11,
    discount = $12,
    observations = $13,
    image_ref = $14,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := tx.Exec(ctx, query,
		job.ID,
		job.Name,
		job.Product.Kind,
		job.Product.ReferenceID,
		job.Product.Group,
		job.Product.Size,
		job.Product.PrintMode,
		job.QuantityThousands,
		job.SlotOccupancy,
		job.Halved,
		job.Outsourced,
		job.Discount,
		job.Observations,
		job.ImageRef,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := replaceFinishes(ctx, tx, job.ID, job.Finishes); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateStatus moves a job to its new production status.
func (r *JobRepositoryPG) UpdateStatus(ctx context.Context, jobID string, status domain.Status) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE jobs SET estado = $2, updated_at = NOW() WHERE id = $1;
`, jobID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a job by its identifier.
func (r *JobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.JobSpec, error) {
	row := r.pool.QueryRow(ctx, selectJob+` WHERE id = $1;`, jobID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadFinishes(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// List returns jobs, optionally filtered by status, newest first.
func (r *JobRepositoryPG) List(ctx context.Context, status domain.Status, limit, offset int) ([]domain.JobSpec, error) {
	query := selectJob + ` WHERE ($1 = '' OR estado = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.JobSpec
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range jobs {
		if err := r.loadFinishes(ctx, &jobs[i]); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

const selectJob = `
SELECT id, customer_id, name, product_kind, reference_id, card_group, flyer_size, flyer_print_mode,
       quantity_thousands, slot_occupancy, halved, outsourced, discount, observations, image_ref, estado,
       created_at, updated_at
FROM jobs`

func scanJob(row pgx.Row) (*domain.JobSpec, error) {
	var job domain.JobSpec
	if err := row.Scan(
		&job.ID,
		&job.CustomerID,
		&job.Name,
		&job.Product.Kind,
		&job.Product.ReferenceID,
		&job.Product.Group,
		&job.Product.Size,
		&job.Product.PrintMode,
		&job.QuantityThousands,
		&job.SlotOccupancy,
		&job.Halved,
		&job.Outsourced,
		&job.Discount,
		&job.Observations,
		&job.ImageRef,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryPG) loadFinishes(ctx context.Context, job *domain.JobSpec) error {
	rows, err := r.pool.Query(ctx, `
SELECT finish_id FROM job_finishes WHERE job_id = $1 ORDER BY finish_id;
`, job.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	job.Finishes = nil
	for rows.Next() {
		var sel domain.FinishSelection
		if err := rows.Scan(&sel.FinishID); err != nil {
			return err
		}
		job.Finishes = append(job.Finishes, sel)
	}
	return rows.Err()
}

func replaceFinishes(ctx context.Context, tx pgx.Tx, jobID string, finishes []domain.FinishSelection) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_finishes WHERE job_id = $1;`, jobID); err != nil {
		return err
	}
	for _, sel := range finishes {
		if _, err := tx.Exec(ctx, `
INSERT INTO job_finishes (job_id, finish_id) VALUES ($1, $2);
`, jobID, sel.FinishID); err != nil {
			return err
		}
	}
	return nil
}
