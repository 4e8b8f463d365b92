package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Copypoint struct {
	ID        int64
	StoreID   int64
	Name      string
	Active    bool
	CreatedAt time.Time
}

type Copypoints struct {
	pool *pgxpool.Pool
}

func NewCopypoints(pool *pgxpool.Pool) *Copypoints {
	return &Copypoints{pool: pool}
}

func (r *Copypoints) GetByID(ctx context.Context, id int64) (Copypoint, error) {
	var c Copypoint
	err := r.pool.QueryRow(ctx,
		`SELECT id, store_id, name, active, created_at FROM copypoints WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.StoreID, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		return Copypoint{}, mapNoRows(err)
	}
	return c, nil
}

func (r *Copypoints) ListByStore(ctx context.Context, storeID int64) ([]Copypoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, store_id, name, active, created_at
		 FROM copypoints WHERE store_id = $1 ORDER BY id`,
		storeID)
	if err != nil {
		return nil, fmt.Errorf("listing copypoints for store %d: %w", storeID, err)
	}
	defer rows.Close()

	var points []Copypoint
	for rows.Next() {
		var c Copypoint
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, c)
	}
	return points, rows.Err()
}

func (r *Copypoints) Create(ctx context.Context, storeID int64, name string) (Copypoint, error) {
	var c Copypoint
	err := r.pool.QueryRow(ctx,
		`INSERT INTO copypoints (store_id, name, active)
		 VALUES ($1, $2, TRUE)
		 RETURNING id, store_id, name, active, created_at`,
		storeID, name,
	).Scan(&c.ID, &c.StoreID, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		return Copypoint{}, fmt.Errorf("creating copypoint: %w", err)
	}
	return c, nil
}
