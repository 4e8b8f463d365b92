package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentMethod struct {
	ID     int64
	Code   string
	Name   string
	Active bool
}

type PaymentMethods struct {
	pool *pgxpool.Pool
}

func NewPaymentMethods(pool *pgxpool.Pool) *PaymentMethods {
	return &PaymentMethods{pool: pool}
}

func (r *PaymentMethods) ListActive(ctx context.Context) ([]PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, active FROM payment_methods WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var methods []PaymentMethod
	for rows.Next() {
		var m PaymentMethod
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Active); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}
