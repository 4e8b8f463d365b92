// Package repository holds the pgx-backed persistence layer. The
// authorization engine itself never writes through these types; it only
// reads role data via the grants provider.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("repository: not found")

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
