package grants

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGrantStore reads grants through the role hierarchies. Historical
// (inactive) grants stay in the tables and are filtered out here; inactive
// modules grant nothing regardless of role.
type PostgresGrantStore struct {
	pool *pgxpool.Pool
}

func NewPostgresGrantStore(pool *pgxpool.Pool) *PostgresGrantStore {
	return &PostgresGrantStore{pool: pool}
}

var _ GrantStore = (*PostgresGrantStore)(nil)

func (s *PostgresGrantStore) StoreModules(ctx context.Context, userID, storeID int64) ([]string, error) {
	return s.modules(ctx,
		`SELECT DISTINCT m.code
		 FROM store_administrators sa
		 JOIN role_permissions rp ON rp.role_id = sa.role_id
		 JOIN modules m ON m.id = rp.module_id
		 WHERE sa.user_id = $1 AND sa.store_id = $2
		   AND sa.active AND m.active`,
		userID, storeID)
}

func (s *PostgresGrantStore) CopypointModules(ctx context.Context, userID, copypointID int64) ([]string, error) {
	return s.modules(ctx,
		`SELECT DISTINCT m.code
		 FROM copypoint_employees ce
		 JOIN role_permissions rp ON rp.role_id = ce.role_id
		 JOIN modules m ON m.id = rp.module_id
		 WHERE ce.user_id = $1 AND ce.copypoint_id = $2
		   AND ce.active AND m.active`,
		userID, copypointID)
}

func (s *PostgresGrantStore) modules(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying grants: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
