// Package github implements the NotificationClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.NotificationClient = (*Client)(nil)

// Client implements the driven.NotificationClient port using the go-github library.
type Client struct {
	gh  *gh.Client
	now func() time.Time
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. revalidateTransport (forces revalidation of every cached response)
//  3. httpcache (ETag-based conditional requests)
//  4. tokenTransport (token-scheme Authorization and v3 Accept headers)
//  5. go-github (request building and response decoding)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = newTokenTransport(http.DefaultTransport, token)
	rateLimitClient := github_ratelimit.NewClient(&revalidateTransport{base: cacheTransport})
	rateLimitClient.Timeout = 30 * time.Second

	return &Client{
		gh:  gh.NewClient(rateLimitClient),
		now: time.Now,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
// The token transport is layered over httpClient's transport.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	wrapped := *httpClient
	wrapped.Transport = newTokenTransport(httpClient.Transport, token)

	client := gh.NewClient(&wrapped)
	client.BaseURL = u

	return &Client{
		gh:  client,
		now: time.Now,
	}, nil
}

// ListNotifications retrieves the first page of the authenticated user's
// unread notifications. Pagination is deliberately not followed.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	req, err := c.gh.NewRequest(http.MethodGet, "notifications", nil)
	if err != nil {
		return nil, fmt.Errorf("building notifications request: %w", err)
	}

	var notifications []*gh.Notification
	resp, err := c.gh.Do(ctx, req, &notifications)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", classifyError(resp, err))
	}

	logRateLimit(resp, "notifications", len(notifications))

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, mapNotification(n))
	}

	return result, nil
}

// FetchPullRequest retrieves a pull request from the absolute API URL found
// in a notification subject.
func (c *Client) FetchPullRequest(ctx context.Context, resourceURL string) (*model.PullRequestDetail, error) {
	req, err := c.gh.NewRequest(http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building pull request request for %s: %w", resourceURL, err)
	}

	var pr gh.PullRequest
	resp, err := c.gh.Do(ctx, req, &pr)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s: %w", resourceURL, classifyError(resp, err))
	}

	logRateLimit(resp, "pull-request", 1)

	detail := mapPullRequest(&pr, c.now())
	return &detail, nil
}

// FetchComments retrieves the conversation comments at the given absolute
// URL (a pull request's comments_url). Only the first page is read.
func (c *Client) FetchComments(ctx context.Context, commentsURL string) ([]model.Comment, error) {
	req, err := c.gh.NewRequest(http.MethodGet, commentsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building comments request for %s: %w", commentsURL, err)
	}

	var comments []*gh.IssueComment
	resp, err := c.gh.Do(ctx, req, &comments)
	if err != nil {
		return nil, fmt.Errorf("fetching comments %s: %w", commentsURL, classifyError(resp, err))
	}

	logRateLimit(resp, "comments", len(comments))

	result := make([]model.Comment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, model.Comment{Body: comment.GetBody()})
	}

	return result, nil
}

// MarkThreadRead marks a notification thread as read by sending an empty JSON
// object to PATCH /notifications/threads/{id}. GitHub answers 205 Reset Content.
func (c *Client) MarkThreadRead(ctx context.Context, threadID string) error {
	u := fmt.Sprintf("notifications/threads/%s", url.PathEscape(threadID))
	req, err := c.gh.NewRequest(http.MethodPatch, u, struct{}{})
	if err != nil {
		return fmt.Errorf("building mark-read request for thread %s: %w", threadID, err)
	}

	resp, err := c.gh.Do(ctx, req, nil)
	if err != nil {
		return fmt.Errorf("marking thread %s read: %w", threadID, classifyError(resp, err))
	}

	return nil
}

// ValidateToken verifies the client's credential and returns the
// authenticated login.
func (c *Client) ValidateToken(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", classifyError(resp, err))
	}
	return user.GetLogin(), nil
}

// mapNotification converts a go-github Notification to a domain model Notification.
func mapNotification(n *gh.Notification) model.Notification {
	return model.Notification{
		ID:          n.GetID(),
		SubjectType: model.ParseSubjectType(n.GetSubject().GetType()),
		SubjectURL:  n.GetSubject().GetURL(),
	}
}

// mapPullRequest converts a go-github PullRequest to a domain model
// PullRequestDetail. A missing updated_at is treated as "now".
func mapPullRequest(pr *gh.PullRequest, now time.Time) model.PullRequestDetail {
	updatedAt := now
	if pr.UpdatedAt != nil {
		updatedAt = pr.GetUpdatedAt().Time
	}

	return model.PullRequestDetail{
		Title:       pr.GetTitle(),
		Number:      pr.GetNumber(),
		HTMLURL:     pr.GetHTMLURL(),
		Merged:      pr.GetMerged(),
		CommentsURL: pr.GetCommentsURL(),
		UpdatedAt:   updatedAt,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
