package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// CupoRepositoryPG implements domain.CupoRepository.
type CupoRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCupoRepository creates a new cupo repository backed by PostgreSQL.
func NewCupoRepository(pool *pgxpool.Pool) *CupoRepositoryPG {
	return &CupoRepositoryPG{pool: pool}
}

// Create persists a production batch and its member jobs.
func (r *CupoRepositoryPG) Create(ctx context.Context, cupo *domain.Cupo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
INSERT INTO cupos (id, product_kind, occupied_capacity, status)
VALUES ($1, $2, $3, $4);
`, cupo.ID, cupo.Kind, cupo.OccupiedCapacity, cupo.Status)
	if err != nil {
		return err
	}
	for _, jobID := range cupo.JobIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO cupo_items (cupo_id, job_id) VALUES ($1, $2);
`, cupo.ID, jobID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Close marks a cupo as closed.
func (r *CupoRepositoryPG) Close(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE cupos SET status = $2 WHERE id = $1;
`, id, domain.CupoClosed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns cupos with their member job ids, newest first.
func (r *CupoRepositoryPG) List(ctx context.Context, limit, offset int) ([]domain.Cupo, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, product_kind, occupied_capacity, status, created_at
FROM cupos
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cupos []domain.Cupo
	for rows.Next() {
		var c domain.Cupo
		if err := rows.Scan(&c.ID, &c.Kind, &c.OccupiedCapacity, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		cupos = append(cupos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cupos {
		itemRows, err := r.pool.Query(ctx, `
SELECT job_id FROM cupo_items WHERE cupo_id = $1 ORDER BY job_id;
`, cupos[i].ID)
		if err != nil {
			return nil, err
		}
		for itemRows.Next() {
			var jobID string
			if err := itemRows.Scan(&jobID); err != nil {
				itemRows.Close()
				return nil, err
			}
			cupos[i].JobIDs = append(cupos[i].JobIDs, jobID)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, err
		}
		itemRows.Close()
	}
	return cupos, nil
}
