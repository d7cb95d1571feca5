// Package present composes presenters: fanning out to several channels and
// recording every presentation for the web panel.
package present

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

var _ driven.Presenter = Fanout(nil)

// Fanout calls every presenter in order. A presentation counts as shown when
// at least one presenter succeeds; the other failures are logged. Only when
// every presenter fails is the joined error returned.
type Fanout []driven.Presenter

// Present forwards to every presenter.
func (f Fanout) Present(ctx context.Context, positive bool, pr model.PRSummary) error {
	return f.each("present", func(p driven.Presenter) error {
		return p.Present(ctx, positive, pr)
	})
}

// Advise forwards to every presenter.
func (f Fanout) Advise(ctx context.Context, message string) error {
	return f.each("advise", func(p driven.Presenter) error {
		return p.Advise(ctx, message)
	})
}

func (f Fanout) each(op string, call func(driven.Presenter) error) error {
	var errs []error
	for _, p := range f {
		if err := call(p); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	if len(errs) == len(f) {
		return errors.Join(errs...)
	}

	for _, err := range errs {
		slog.Warn("presentation channel failed", "op", op, "error", err)
	}
	return nil
}
