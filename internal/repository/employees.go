package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Employee struct {
	UserID      int64
	Email       string
	CopypointID int64
	RoleName    string
	GrantedAt   time.Time
	Active      bool
}

type Employees struct {
	pool *pgxpool.Pool
}

func NewEmployees(pool *pgxpool.Pool) *Employees {
	return &Employees{pool: pool}
}

func (r *Employees) ListByCopypoint(ctx context.Context, copypointID int64) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ce.user_id, u.email, ce.copypoint_id, ro.name, ce.granted_at, ce.active
		 FROM copypoint_employees ce
		 JOIN users u ON u.id = ce.user_id
		 JOIN roles ro ON ro.id = ce.role_id
		 WHERE ce.copypoint_id = $1 AND ce.active
		 ORDER BY ce.granted_at`,
		copypointID)
	if err != nil {
		return nil, fmt.Errorf("listing employees for copypoint %d: %w", copypointID, err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.UserID, &e.Email, &e.CopypointID, &e.RoleName, &e.GrantedAt, &e.Active); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
