package present

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

var _ driven.Presenter = (*Recorder)(nil)

// Recorder stores each presentation as a Celebration so the web panel can
// render the latest one.
type Recorder struct {
	store driven.CelebrationStore
	now   func() time.Time
}

// NewRecorder creates a Recorder backed by store.
func NewRecorder(store driven.CelebrationStore) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Present records the celebration.
func (r *Recorder) Present(ctx context.Context, positive bool, pr model.PRSummary) error {
	c, err := r.store.Record(ctx, model.Celebration{
		Outcome:     model.OutcomeOf(positive),
		Title:       pr.Title,
		Number:      pr.Number,
		HTMLURL:     pr.HTMLURL,
		PresentedAt: r.now(),
	})
	if err != nil {
		return fmt.Errorf("recording celebration: %w", err)
	}

	slog.Debug("celebration recorded", "id", c.ID, "outcome", string(c.Outcome))
	return nil
}

// Advise logs the message; the panel has no advisory slot.
func (r *Recorder) Advise(_ context.Context, message string) error {
	slog.Info("advisory", "message", message)
	return nil
}
