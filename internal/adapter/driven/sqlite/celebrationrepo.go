package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CelebrationStore = (*CelebrationRepo)(nil)

// CelebrationRepo is the SQLite implementation of the CelebrationStore port interface.
type CelebrationRepo struct {
	db *DB
}

// NewCelebrationRepo creates a new CelebrationRepo backed by the given DB.
func NewCelebrationRepo(db *DB) *CelebrationRepo {
	return &CelebrationRepo{db: db}
}

// Record inserts a celebration and returns it with its assigned ID.
func (r *CelebrationRepo) Record(ctx context.Context, c model.Celebration) (model.Celebration, error) {
	const query = `INSERT INTO celebrations (outcome, title, number, html_url, presented_at) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.Writer.ExecContext(ctx, query,
		string(c.Outcome), c.Title, c.Number, c.HTMLURL, formatTime(c.PresentedAt))
	if err != nil {
		return model.Celebration{}, fmt.Errorf("record celebration %q: %w", c.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Celebration{}, fmt.Errorf("celebration last insert id: %w", err)
	}
	c.ID = id

	return c, nil
}

// Latest returns the most recent celebration, or nil if none were recorded.
func (r *CelebrationRepo) Latest(ctx context.Context) (*model.Celebration, error) {
	list, err := r.ListRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// ListRecent returns up to limit celebrations, newest first.
func (r *CelebrationRepo) ListRecent(ctx context.Context, limit int) ([]model.Celebration, error) {
	const query = `
		SELECT id, outcome, title, number, html_url, presented_at
		FROM celebrations
		ORDER BY presented_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list celebrations: %w", err)
	}
	defer rows.Close()

	result := []model.Celebration{}
	for rows.Next() {
		var (
			c           model.Celebration
			outcome     string
			presentedAt string
		)
		if err := rows.Scan(&c.ID, &outcome, &c.Title, &c.Number, &c.HTMLURL, &presentedAt); err != nil {
			return nil, fmt.Errorf("scan celebration: %w", err)
		}
		c.Outcome = model.Outcome(outcome)
		c.PresentedAt, err = parseTime(presentedAt)
		if err != nil {
			return nil, fmt.Errorf("parse presented_at for celebration %d: %w", c.ID, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate celebrations: %w", err)
	}

	return result, nil
}
