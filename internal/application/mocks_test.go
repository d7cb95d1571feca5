package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// --- Mock implementations ---

// mockNotificationClient records every call so tests can assert ordering.
type mockNotificationClient struct {
	mu    sync.Mutex
	calls []string

	listNotifications func(ctx context.Context) ([]model.Notification, error)
	fetchPullRequest  func(ctx context.Context, url string) (*model.PullRequestDetail, error)
	fetchComments     func(ctx context.Context, url string) ([]model.Comment, error)
	markThreadRead    func(ctx context.Context, threadID string) error
}

func (m *mockNotificationClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockNotificationClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockNotificationClient) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	m.record("list")
	if m.listNotifications == nil {
		return nil, nil
	}
	return m.listNotifications(ctx)
}

func (m *mockNotificationClient) FetchPullRequest(ctx context.Context, url string) (*model.PullRequestDetail, error) {
	m.record("pr " + url)
	if m.fetchPullRequest == nil {
		return &model.PullRequestDetail{}, nil
	}
	return m.fetchPullRequest(ctx, url)
}

func (m *mockNotificationClient) FetchComments(ctx context.Context, url string) ([]model.Comment, error) {
	m.record("comments " + url)
	if m.fetchComments == nil {
		return nil, nil
	}
	return m.fetchComments(ctx, url)
}

func (m *mockNotificationClient) MarkThreadRead(ctx context.Context, threadID string) error {
	m.record("ack " + threadID)
	if m.markThreadRead == nil {
		return nil
	}
	return m.markThreadRead(ctx, threadID)
}

type presentCall struct {
	Positive bool
	PR       model.PRSummary
}

type mockPresenter struct {
	mu       sync.Mutex
	presents []presentCall
	advices  []string

	presentErr error
	onPresent  func()
}

func (m *mockPresenter) Present(_ context.Context, positive bool, pr model.PRSummary) error {
	m.mu.Lock()
	m.presents = append(m.presents, presentCall{Positive: positive, PR: pr})
	onPresent := m.onPresent
	m.mu.Unlock()

	if onPresent != nil {
		onPresent()
	}
	return m.presentErr
}

func (m *mockPresenter) Advise(_ context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advices = append(m.advices, message)
	return nil
}

func (m *mockPresenter) Presents() []presentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]presentCall(nil), m.presents...)
}

func (m *mockPresenter) Advices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.advices...)
}

type mockFlagStore struct {
	mu     sync.Mutex
	flags  map[string]bool
	getErr error
	sets   int
}

func newMockFlagStore() *mockFlagStore {
	return &mockFlagStore{flags: make(map[string]bool)}
}

func (m *mockFlagStore) GetFlag(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	return m.flags[name], nil
}

func (m *mockFlagStore) SetFlag(_ context.Context, name string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.flags[name] = value
	return nil
}

type mockOutcomeStore struct {
	mu      sync.Mutex
	last    map[string]model.PresentedOutcome
	saves   int
	failGet bool
}

func newMockOutcomeStore() *mockOutcomeStore {
	return &mockOutcomeStore{last: make(map[string]model.PresentedOutcome)}
}

func (m *mockOutcomeStore) GetLast(_ context.Context, prURL string) (*model.PresentedOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("store unavailable")
	}
	o, ok := m.last[prURL]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *mockOutcomeStore) Save(_ context.Context, o model.PresentedOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.last[o.PRURL] = o
	return nil
}

type mockLinkOpener struct {
	opened []string
	err    error
}

func (m *mockLinkOpener) OpenURL(url string) error {
	m.opened = append(m.opened, url)
	return m.err
}

type mockCelebrationStore struct {
	recent []model.Celebration
}

func (m *mockCelebrationStore) Record(_ context.Context, c model.Celebration) (model.Celebration, error) {
	c.ID = int64(len(m.recent) + 1)
	m.recent = append([]model.Celebration{c}, m.recent...)
	return c, nil
}

func (m *mockCelebrationStore) Latest(_ context.Context) (*model.Celebration, error) {
	if len(m.recent) == 0 {
		return nil, nil
	}
	c := m.recent[0]
	return &c, nil
}

func (m *mockCelebrationStore) ListRecent(_ context.Context, limit int) ([]model.Celebration, error) {
	if limit > len(m.recent) {
		limit = len(m.recent)
	}
	return m.recent[:limit], nil
}
