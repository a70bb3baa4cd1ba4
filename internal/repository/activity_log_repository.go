package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/confdesk/confreg-backend/internal/model"
)

// ActivityLogRepository appends rows to the admin activity trail.
type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository creates a new ActivityLogRepository.
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Insert appends one log entry. Callers treat failures as best-effort;
// see service.ActivityLogger.
func (r *ActivityLogRepository) Insert(ctx context.Context, e *model.ActivityLogEntry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admin_logs (action, details, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Action, e.Details, e.IPAddress, e.UserAgent,
	).Scan(&e.ID, &e.CreatedAt)
}
