package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/captable/captable-api/internal/core/domain"
)

// AuditRepository is the Postgres-backed audit log. Append-only: there are no
// update or delete operations.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Create(ctx context.Context, event *domain.AuditEvent) (*domain.AuditEvent, error) {
	created := *event
	err := r.pool.QueryRow(ctx, `
		INSERT INTO audit_events (action, timestamp, user_id, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		event.Action, event.Timestamp, event.UserID, event.Details,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert audit event: %w", err)
	}
	return &created, nil
}

func (r *AuditRepository) List(ctx context.Context) ([]*domain.AuditEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action, timestamp, user_id, details
		FROM audit_events
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var result []*domain.AuditEvent
	for rows.Next() {
		var ev domain.AuditEvent
		if err := rows.Scan(&ev.ID, &ev.Action, &ev.Timestamp, &ev.UserID, &ev.Details); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		result = append(result, &ev)
	}
	return result, rows.Err()
}
