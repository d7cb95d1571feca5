package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// githubService is the credential store key for the GitHub token.
const githubService = "github"

// ErrEmptyToken is returned when an empty token is submitted.
var ErrEmptyToken = errors.New("token must not be empty")

// ClientFactory builds a notification client bound to token.
type ClientFactory func(token string) driven.NotificationClient

// tokenValidator is implemented by clients that can check their credential
// before being swapped in.
type tokenValidator interface {
	ValidateToken(ctx context.Context) (string, error)
}

// CredentialService resolves and updates the GitHub token at runtime.
type CredentialService struct {
	store     driven.CredentialStore
	provider  *GitHubClientProvider
	advisory  *TokenAdvisory
	newClient ClientFactory
}

// NewCredentialService creates a CredentialService. store may be nil, in
// which case tokens set at runtime are kept in memory only.
func NewCredentialService(store driven.CredentialStore, provider *GitHubClientProvider, advisory *TokenAdvisory, newClient ClientFactory) *CredentialService {
	return &CredentialService{
		store:     store,
		provider:  provider,
		advisory:  advisory,
		newClient: newClient,
	}
}

// Resolve returns the token to start with. A stored token takes priority
// over envToken.
func (s *CredentialService) Resolve(ctx context.Context, envToken string) string {
	if s.store == nil {
		return envToken
	}

	stored, err := s.store.Get(ctx, githubService)
	if err != nil {
		if !errors.Is(err, driven.ErrEncryptionKeyNotSet) {
			slog.Warn("reading stored github token failed", "error", err)
		}
		return envToken
	}
	if stored != "" {
		return stored
	}
	return envToken
}

// SetToken validates token when the client supports it, persists it, swaps
// the active client and re-arms the missing-token advisory. It reports
// whether the token was persisted.
func (s *CredentialService) SetToken(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, ErrEmptyToken
	}

	client := s.newClient(token)
	if v, ok := client.(tokenValidator); ok {
		login, err := v.ValidateToken(ctx)
		if err != nil {
			return false, err
		}
		slog.Info("github token validated", "login", login)
	}

	persisted := false
	if s.store != nil {
		err := s.store.Set(ctx, githubService, token)
		switch {
		case err == nil:
			persisted = true
		case errors.Is(err, driven.ErrEncryptionKeyNotSet):
			slog.Warn("no secret key configured, github token kept in memory only")
		default:
			return false, fmt.Errorf("storing github token: %w", err)
		}
	}

	s.provider.Replace(client)

	if err := s.advisory.Reset(ctx); err != nil {
		slog.Warn("resetting token advisory failed", "error", err)
	}

	return persisted, nil
}
