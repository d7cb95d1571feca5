package application

import (
	"sync"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// GitHubClientProvider enables runtime hot-swap of the notification client.
// It holds a mutex-protected reference to the current driven.NotificationClient,
// allowing a token update to take effect without restarting the daemon.
type GitHubClientProvider struct {
	mu     sync.RWMutex
	client driven.NotificationClient
}

// NewGitHubClientProvider creates a new provider with the given initial client.
// client may be nil if no token is available at startup.
func NewGitHubClientProvider(client driven.NotificationClient) *GitHubClientProvider {
	return &GitHubClientProvider{client: client}
}

// Get returns the current client, or nil when no token is configured.
func (p *GitHubClientProvider) Get() driven.NotificationClient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Replace swaps the current client. The next caller of Get receives it.
func (p *GitHubClientProvider) Replace(client driven.NotificationClient) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// HasClient returns true if a non-nil client is currently held.
func (p *GitHubClientProvider) HasClient() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil
}
