package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// CommandOpenExternalLink is the only event the panel emits.
const CommandOpenExternalLink = "openExternalLink"

// ErrUnknownCommand is returned for panel events other than openExternalLink.
var ErrUnknownCommand = errors.New("unknown panel command")

// TestSummary is the synthetic pull request shown by the test action.
var TestSummary = model.PRSummary{
	Title:   "Test PR Animation",
	Number:  123,
	HTMLURL: "https://github.com/example/repo/pull/123",
}

// CelebrationService serves the user-invoked test action, panel events and
// the celebration history.
type CelebrationService struct {
	presenter driven.Presenter
	opener    driven.LinkOpener
	history   driven.CelebrationStore
}

// NewCelebrationService creates a CelebrationService. history may be nil
// when no panel is served.
func NewCelebrationService(presenter driven.Presenter, opener driven.LinkOpener, history driven.CelebrationStore) *CelebrationService {
	return &CelebrationService{
		presenter: presenter,
		opener:    opener,
		history:   history,
	}
}

// Test presents the synthetic summary, celebrating first and then the
// discouraging variant, without touching the network.
func (s *CelebrationService) Test(ctx context.Context) error {
	if err := s.presenter.Present(ctx, true, TestSummary); err != nil {
		return fmt.Errorf("presenting positive test: %w", err)
	}
	if err := s.presenter.Present(ctx, false, TestSummary); err != nil {
		return fmt.Errorf("presenting negative test: %w", err)
	}

	slog.Info("test presentation shown")
	return nil
}

// HandleEvent handles a message emitted by the panel. openExternalLink
// forwards url to the host's opener unchanged.
func (s *CelebrationService) HandleEvent(command, url string) error {
	if command != CommandOpenExternalLink {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if s.opener == nil {
		return errors.New("no link opener configured")
	}

	if err := s.opener.OpenURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}

	slog.Debug("external link opened", "url", url)
	return nil
}

// Latest returns the most recent celebration, or nil if none was presented.
func (s *CelebrationService) Latest(ctx context.Context) (*model.Celebration, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Latest(ctx)
}

// Recent returns up to limit celebrations, newest first.
func (s *CelebrationService) Recent(ctx context.Context, limit int) ([]model.Celebration, error) {
	if s.history == nil {
		return []model.Celebration{}, nil
	}
	return s.history.ListRecent(ctx, limit)
}
