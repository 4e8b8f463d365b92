package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthzAuditEvent struct {
	ID         int64
	UserID     int64
	Method     string
	Path       string
	Scope      string
	Reason     string
	OccurredAt time.Time
}

type AuditEvents struct {
	pool *pgxpool.Pool
}

func NewAuditEvents(pool *pgxpool.Pool) *AuditEvents {
	return &AuditEvents{pool: pool}
}

func (r *AuditEvents) Insert(ctx context.Context, e AuthzAuditEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO authz_audit (user_id, method, path, scope, reason, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.UserID, e.Method, e.Path, e.Scope, e.Reason, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}
