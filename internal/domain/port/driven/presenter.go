package driven

import (
	"context"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// Presenter defines the driven port for surfacing outcomes to the user.
type Presenter interface {
	// Present shows the celebratory variant when positive is true and the
	// discouraging one otherwise.
	Present(ctx context.Context, positive bool, pr model.PRSummary) error
	// Advise shows a one-off informational message.
	Advise(ctx context.Context, message string) error
}

// LinkOpener forwards a URL to the host's "open external URL" facility.
type LinkOpener interface {
	OpenURL(url string) error
}
