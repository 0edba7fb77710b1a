package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// NotificationRepositoryPG implements domain.NotificationRepository.
type NotificationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository backed by PostgreSQL.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepositoryPG {
	return &NotificationRepositoryPG{pool: pool}
}

// Create persists a generated notification event.
func (r *NotificationRepositoryPG) Create(ctx context.Context, event *domain.NotificationEvent) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO notifications (id, job_id, triggering_status, template_key, rendered_text)
VALUES ($1, $2, $3, $4, $5);
`, event.ID, event.JobID, event.TriggeringStatus, event.TemplateKey, event.RenderedText)
	return err
}

// ListByJobID returns the notifications generated for a job, newest first.
func (r *NotificationRepositoryPG) ListByJobID(ctx context.Context, jobID string) ([]domain.NotificationEvent, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, job_id, triggering_status, template_key, rendered_text, acknowledged, generated_at
FROM notifications
WHERE job_id = $1
ORDER BY generated_at DESC;
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.NotificationEvent
	for rows.Next() {
		var e domain.NotificationEvent
		if err := rows.Scan(&e.ID, &e.JobID, &e.TriggeringStatus, &e.TemplateKey, &e.RenderedText, &e.Acknowledged, &e.GeneratedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Acknowledge marks a notification as copied out by an operator. The flag is
// the only mutable field on a notification.
func (r *NotificationRepositoryPG) Acknowledge(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE notifications SET acknowledged = TRUE WHERE id = $1;
`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
