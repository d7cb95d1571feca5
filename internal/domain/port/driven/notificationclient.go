package driven

import (
	"context"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// NotificationClient defines the driven port for the hosting provider's
// notification and pull request REST surface. Implementations bind the
// credential at construction time.
type NotificationClient interface {
	// ListNotifications returns the first page of unread notifications in
	// provider order (most recent first).
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	// FetchPullRequest fetches a pull request by its absolute API URL.
	FetchPullRequest(ctx context.Context, url string) (*model.PullRequestDetail, error)
	// FetchComments fetches the conversation comments at an absolute URL.
	FetchComments(ctx context.Context, url string) ([]model.Comment, error)
	// MarkThreadRead marks a notification thread as read.
	MarkThreadRead(ctx context.Context, threadID string) error
}
