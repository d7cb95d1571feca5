package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FlagStore = (*FlagRepo)(nil)

// FlagRepo is the SQLite implementation of the FlagStore port interface.
type FlagRepo struct {
	db *DB
}

// NewFlagRepo creates a new FlagRepo backed by the given DB.
func NewFlagRepo(db *DB) *FlagRepo {
	return &FlagRepo{db: db}
}

// GetFlag returns the stored value of the named flag. Unknown flags are false.
func (r *FlagRepo) GetFlag(ctx context.Context, name string) (bool, error) {
	const query = `SELECT value FROM flags WHERE name = ?`
	var value bool
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get flag %q: %w", name, err)
	}
	return value, nil
}

// SetFlag stores or replaces the value of the named flag.
func (r *FlagRepo) SetFlag(ctx context.Context, name string, value bool) error {
	const query = `
		INSERT INTO flags (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.Writer.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("set flag %q: %w", name, err)
	}
	return nil
}
