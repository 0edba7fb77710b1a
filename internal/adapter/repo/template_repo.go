package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// TemplateRepositoryPG implements domain.TemplateRepository. Template bodies
// are operator-edited; the placeholder token names inside them are a
// persisted contract.
type TemplateRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository backed by PostgreSQL.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepositoryPG {
	return &TemplateRepositoryPG{pool: pool}
}

// Snapshot loads all template bodies keyed by template key.
func (r *TemplateRepositoryPG) Snapshot(ctx context.Context) (domain.Templates, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, body FROM message_templates;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make(domain.Templates)
	for rows.Next() {
		var key domain.TemplateKey
		var body string
		if err := rows.Scan(&key, &body); err != nil {
			return nil, err
		}
		templates[key] = body
	}
	return templates, rows.Err()
}

// Upsert replaces the body stored for a template key.
func (r *TemplateRepositoryPG) Upsert(ctx context.Context, key domain.TemplateKey, body string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO message_templates (key, body)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW();
`, key, body)
	return err
}
