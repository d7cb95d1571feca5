package driven

import (
	"context"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// FlagStore defines the driven port for named boolean flags that survive
// restarts. Unknown flags read as false.
type FlagStore interface {
	GetFlag(ctx context.Context, name string) (bool, error)
	SetFlag(ctx context.Context, name string, value bool) error
}

// OutcomeStore remembers the last outcome presented for each pull request.
type OutcomeStore interface {
	// GetLast returns nil, nil when nothing was presented for prURL yet.
	GetLast(ctx context.Context, prURL string) (*model.PresentedOutcome, error)
	Save(ctx context.Context, outcome model.PresentedOutcome) error
}

// CelebrationStore keeps the history of presentations rendered by the panel.
type CelebrationStore interface {
	Record(ctx context.Context, c model.Celebration) (model.Celebration, error)
	// Latest returns nil, nil when nothing was presented yet.
	Latest(ctx context.Context) (*model.Celebration, error)
	ListRecent(ctx context.Context, limit int) ([]model.Celebration, error)
}
