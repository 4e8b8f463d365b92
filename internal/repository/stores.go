package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	ID        int64
	Name      string
	OwnerID   int64
	CreatedAt time.Time
}

type Stores struct {
	pool *pgxpool.Pool
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{pool: pool}
}

func (r *Stores) GetByID(ctx context.Context, id int64) (Store, error) {
	var s Store
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at FROM stores WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return Store{}, mapNoRows(err)
	}
	return s, nil
}

func (r *Stores) List(ctx context.Context) ([]Store, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, owner_id, created_at FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *Stores) Create(ctx context.Context, name string, ownerID int64) (Store, error) {
	var s Store
	err := r.pool.QueryRow(ctx,
		`INSERT INTO stores (name, owner_id)
		 VALUES ($1, $2)
		 RETURNING id, name, owner_id, created_at`,
		name, ownerID,
	).Scan(&s.ID, &s.Name, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		return Store{}, fmt.Errorf("creating store: %w", err)
	}
	return s, nil
}
