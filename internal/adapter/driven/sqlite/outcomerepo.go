package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OutcomeStore = (*OutcomeRepo)(nil)

// OutcomeRepo is the SQLite implementation of the OutcomeStore port interface.
// It keeps exactly one row per pull request URL.
type OutcomeRepo struct {
	db *DB
}

// NewOutcomeRepo creates a new OutcomeRepo backed by the given DB.
func NewOutcomeRepo(db *DB) *OutcomeRepo {
	return &OutcomeRepo{db: db}
}

// GetLast returns the last presented outcome for prURL, or nil if none.
func (r *OutcomeRepo) GetLast(ctx context.Context, prURL string) (*model.PresentedOutcome, error) {
	const query = `SELECT pr_url, outcome, reason, presented_at FROM presented_outcomes WHERE pr_url = ?`

	var (
		po          model.PresentedOutcome
		outcome     string
		reason      string
		presentedAt string
	)
	err := r.db.Reader.QueryRowContext(ctx, query, prURL).Scan(&po.PRURL, &outcome, &reason, &presentedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last outcome for %s: %w", prURL, err)
	}

	po.Outcome = model.Outcome(outcome)
	po.Reason = model.Reason(reason)
	po.PresentedAt, err = parseTime(presentedAt)
	if err != nil {
		return nil, fmt.Errorf("parse presented_at for %s: %w", prURL, err)
	}

	return &po, nil
}

// Save upserts the last presented outcome for the pull request.
func (r *OutcomeRepo) Save(ctx context.Context, po model.PresentedOutcome) error {
	const query = `
		INSERT INTO presented_outcomes (pr_url, outcome, reason, presented_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(pr_url) DO UPDATE SET
			outcome = excluded.outcome,
			reason = excluded.reason,
			presented_at = excluded.presented_at`

	_, err := r.db.Writer.ExecContext(ctx, query,
		po.PRURL, string(po.Outcome), string(po.Reason), formatTime(po.PresentedAt))
	if err != nil {
		return fmt.Errorf("save outcome for %s: %w", po.PRURL, err)
	}
	return nil
}
