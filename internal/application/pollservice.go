// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

const (
	// DefaultCheckInterval is used when no interval is configured.
	DefaultCheckInterval = 60 * time.Second
	// DefaultWarmUp delays the first check after startup.
	DefaultWarmUp = 5 * time.Second
)

var (
	// ErrCheckInProgress is returned by CheckNow when a check is already running.
	ErrCheckInProgress = errors.New("notification check already in progress")
	// ErrNoToken is returned when no GitHub token is configured.
	ErrNoToken = errors.New("no GitHub token configured")
)

// CheckResult summarises one notification check.
type CheckResult struct {
	Fetched      int `json:"fetched"`
	PullRequests int `json:"pull_requests"`
	Presented    int `json:"presented"`
	Suppressed   int `json:"suppressed"`
	Acknowledged int `json:"acknowledged"`
	Failed       int `json:"failed"`
}

// checkRequest represents a manual "check now" trigger.
type checkRequest struct {
	done chan checkResponse
}

type checkResponse struct {
	result CheckResult
	err    error
}

// PollOption configures a PollService.
type PollOption func(*PollService)

// WithWarmUp overrides the delay before the first check.
func WithWarmUp(d time.Duration) PollOption {
	return func(s *PollService) { s.warmUp = d }
}

// WithClock overrides the clock used for classification and suppression.
func WithClock(now func() time.Time) PollOption {
	return func(s *PollService) { s.now = now }
}

// PollService orchestrates periodic notification checks: fetch, filter,
// classify, present and acknowledge.
type PollService struct {
	provider   *GitHubClientProvider
	classifier Classifier
	presenter  driven.Presenter
	outcomes   driven.OutcomeStore
	advisory   *TokenAdvisory
	interval   time.Duration
	warmUp     time.Duration
	now        func() time.Time

	checkCh chan checkRequest
	running atomic.Bool
	busy    atomic.Bool

	mu          sync.RWMutex
	lastCheckAt time.Time
}

// NewPollService creates a new PollService. outcomes may be nil, which
// disables repeat suppression. A non-positive interval falls back to
// DefaultCheckInterval.
func NewPollService(
	provider *GitHubClientProvider,
	classifier Classifier,
	presenter driven.Presenter,
	outcomes driven.OutcomeStore,
	advisory *TokenAdvisory,
	interval time.Duration,
	opts ...PollOption,
) *PollService {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if advisory == nil {
		advisory = NewTokenAdvisory(nil)
	}

	s := &PollService{
		provider:   provider,
		classifier: classifier,
		presenter:  presenter,
		outcomes:   outcomes,
		advisory:   advisory,
		interval:   interval,
		warmUp:     DefaultWarmUp,
		now:        time.Now,
		checkCh:    make(chan checkRequest),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start waits for the warm-up delay, runs a check, then checks on every tick
// of the interval and serves manual triggers. Start blocks until the context
// is canceled and returns once the in-flight check has finished.
func (s *PollService) Start(ctx context.Context) {
	s.running.Store(true)
	defer s.running.Store(false)

	warmUp := time.NewTimer(s.warmUp)
	defer warmUp.Stop()

	// The ticker starts after the first check so the first tick lands one
	// full interval after it.
	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("poll service stopped")
			return
		case <-warmUp.C:
			s.runTick(ctx)
			ticker = time.NewTicker(s.interval)
			tick = ticker.C
		case <-tick:
			s.runTick(ctx)
		case req := <-s.checkCh:
			result, err := s.guardedCheck(ctx)
			req.done <- checkResponse{result: result, err: err}
		}
	}
}

// CheckNow runs a check immediately. When Start is running the request is
// served by its loop, otherwise the check runs on the caller's goroutine.
// Overlapping checks are rejected with ErrCheckInProgress, never queued.
func (s *PollService) CheckNow(ctx context.Context) (CheckResult, error) {
	if s.busy.Load() {
		return CheckResult{}, ErrCheckInProgress
	}

	if !s.running.Load() {
		return s.guardedCheck(ctx)
	}

	// The loop only receives while idle, so a failed send means a tick is
	// running and the request is rejected rather than queued behind it.
	req := checkRequest{done: make(chan checkResponse, 1)}

	select {
	case s.checkCh <- req:
	default:
		return CheckResult{}, ErrCheckInProgress
	}

	select {
	case resp := <-req.done:
		return resp.result, resp.err
	case <-ctx.Done():
		return CheckResult{}, ctx.Err()
	}
}

// LastCheckAt returns when the last check completed, or the zero time.
func (s *PollService) LastCheckAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheckAt
}

// HasToken reports whether a GitHub client is configured.
func (s *PollService) HasToken() bool {
	return s.provider.HasClient()
}

// runTick runs a timer-driven check. Failures are logged only.
func (s *PollService) runTick(ctx context.Context) {
	_, err := s.guardedCheck(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrCheckInProgress):
		slog.Debug("skipping tick, previous check still running")
	case errors.Is(err, ErrNoToken):
		slog.Debug("skipping tick, no GitHub token configured")
	case ctx.Err() != nil:
		slog.Debug("check interrupted by shutdown", "error", err)
	default:
		slog.Error("notification check failed", "error", err)
	}
}

// guardedCheck runs check under the busy guard and converts a panic into an error.
func (s *PollService) guardedCheck(ctx context.Context) (result CheckResult, err error) {
	if !s.busy.CompareAndSwap(false, true) {
		return CheckResult{}, ErrCheckInProgress
	}
	defer s.busy.Store(false)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during notification check", "panic", r)
			err = fmt.Errorf("notification check panicked: %v", r)
		}
	}()

	return s.check(ctx)
}

// check performs one pass over the unread notifications.
func (s *PollService) check(ctx context.Context) (CheckResult, error) {
	var result CheckResult

	client := s.provider.Get()
	if client == nil {
		if s.advisory.Raise(ctx) {
			slog.Warn("github token missing", "advice", TokenAdvisoryMessage)
			if err := s.presenter.Advise(ctx, TokenAdvisoryMessage); err != nil {
				slog.Error("showing token advisory failed", "error", err)
			}
		}
		return result, ErrNoToken
	}

	start := time.Now()

	notifications, err := client.ListNotifications(ctx)
	if err != nil {
		return result, fmt.Errorf("listing notifications: %w", err)
	}
	result.Fetched = len(notifications)

	for _, n := range notifications {
		if !n.IsPullRequest() {
			continue
		}
		result.PullRequests++

		if ctx.Err() != nil {
			result.Failed++
			continue
		}

		outcome, err := s.processNotification(ctx, client, n)
		if err != nil {
			result.Failed++
			slog.Error("processing notification failed",
				"thread_id", n.ID,
				"subject_url", n.SubjectURL,
				"error", err,
			)
			continue
		}

		switch outcome {
		case itemPresented:
			result.Presented++
		case itemSuppressed:
			result.Suppressed++
		}
		result.Acknowledged++
	}

	s.mu.Lock()
	s.lastCheckAt = s.now()
	s.mu.Unlock()

	slog.Info("notification check complete",
		"fetched", result.Fetched,
		"pull_requests", result.PullRequests,
		"presented", result.Presented,
		"suppressed", result.Suppressed,
		"acknowledged", result.Acknowledged,
		"failed", result.Failed,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return result, nil
}

type itemOutcome int

const (
	itemSkipped itemOutcome = iota
	itemPresented
	itemSuppressed
)

// processNotification drives one pull request notification through detail
// fetch, classification and presentation, then acknowledges it. Any error
// leaves the notification unread.
func (s *PollService) processNotification(ctx context.Context, client driven.NotificationClient, n model.Notification) (itemOutcome, error) {
	detail, err := client.FetchPullRequest(ctx, n.SubjectURL)
	if err != nil {
		return itemSkipped, err
	}

	comments, err := client.FetchComments(ctx, detail.CommentsURL)
	if err != nil {
		return itemSkipped, err
	}

	now := s.now()
	outcome := itemSkipped

	if classification, ok := s.classifier.Classify(*detail, comments, now); ok {
		if s.isRepeat(ctx, n.SubjectURL, classification, now) {
			slog.Debug("suppressing repeated presentation",
				"pr_url", n.SubjectURL,
				"outcome", string(classification.Outcome),
				"reason", string(classification.Reason),
			)
			outcome = itemSuppressed
		} else {
			summary := detail.Summary()
			if err := s.presenter.Present(ctx, classification.Outcome.IsPositive(), summary); err != nil {
				return itemSkipped, fmt.Errorf("presenting %s: %w", n.SubjectURL, err)
			}
			s.rememberOutcome(ctx, n.SubjectURL, classification, now)
			outcome = itemPresented

			slog.Info("pull request presented",
				"title", summary.Title,
				"number", summary.Number,
				"outcome", string(classification.Outcome),
				"reason", string(classification.Reason),
			)
		}
	}

	if err := client.MarkThreadRead(ctx, n.ID); err != nil {
		return itemSkipped, err
	}

	return outcome, nil
}

// isRepeat reports whether the same classification was already presented
// for the pull request. A positive outcome is presented once; a negative one
// is presented again once the recent-activity window has elapsed since it
// was last shown. Store failures never suppress.
func (s *PollService) isRepeat(ctx context.Context, prURL string, c model.Classification, now time.Time) bool {
	if s.outcomes == nil {
		return false
	}

	last, err := s.outcomes.GetLast(ctx, prURL)
	if err != nil {
		slog.Warn("reading last presented outcome failed", "pr_url", prURL, "error", err)
		return false
	}
	if last == nil || last.Outcome != c.Outcome || last.Reason != c.Reason {
		return false
	}

	if c.Outcome.IsPositive() {
		return true
	}
	return now.Sub(last.PresentedAt) < RecentActivityWindow
}

func (s *PollService) rememberOutcome(ctx context.Context, prURL string, c model.Classification, now time.Time) {
	if s.outcomes == nil {
		return
	}

	err := s.outcomes.Save(ctx, model.PresentedOutcome{
		PRURL:       prURL,
		Outcome:     c.Outcome,
		Reason:      c.Reason,
		PresentedAt: now,
	})
	if err != nil {
		slog.Warn("saving presented outcome failed", "pr_url", prURL, "error", err)
	}
}
