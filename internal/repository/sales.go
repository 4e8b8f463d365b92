package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Sale struct {
	ID          int64
	CopypointID int64
	SellerID    int64
	TotalCents  int64
	Status      string
	CreatedAt   time.Time
}

type Sales struct {
	pool *pgxpool.Pool
}

func NewSales(pool *pgxpool.Pool) *Sales {
	return &Sales{pool: pool}
}

func (r *Sales) ListByCopypoint(ctx context.Context, copypointID int64) ([]Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, copypoint_id, seller_id, total_cents, status, created_at
		 FROM sales WHERE copypoint_id = $1 ORDER BY created_at DESC`,
		copypointID)
	if err != nil {
		return nil, fmt.Errorf("listing sales for copypoint %d: %w", copypointID, err)
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.CopypointID, &s.SellerID, &s.TotalCents, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *Sales) Create(ctx context.Context, copypointID, sellerID, totalCents int64) (Sale, error) {
	var s Sale
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sales (copypoint_id, seller_id, total_cents, status)
		 VALUES ($1, $2, $3, 'completed')
		 RETURNING id, copypoint_id, seller_id, total_cents, status, created_at`,
		copypointID, sellerID, totalCents,
	).Scan(&s.ID, &s.CopypointID, &s.SellerID, &s.TotalCents, &s.Status, &s.CreatedAt)
	if err != nil {
		return Sale{}, fmt.Errorf("creating sale: %w", err)
	}
	return s, nil
}
