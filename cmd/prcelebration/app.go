package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/browser"
	githubadapter "github.com/ericfisherdev/prcelebration/internal/adapter/driven/github"
	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/notify"
	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/present"
	sqliteadapter "github.com/ericfisherdev/prcelebration/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/prcelebration/internal/application"
	"github.com/ericfisherdev/prcelebration/internal/config"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
	"github.com/ericfisherdev/prcelebration/internal/logging"
)

// app holds the wired services shared by the run and check commands.
type app struct {
	db             *sqliteadapter.DB
	pollSvc        *application.PollService
	celebrationSvc *application.CelebrationService
	credentialSvc  *application.CredentialService
}

// setup loads configuration and installs the default logger. The returned
// closer flushes the log file, if any.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"check_interval", cfg.CheckInterval,
		"desktop_notify", cfg.DesktopNotify,
		"has_token", cfg.HasGitHubToken(),
	)
	return cfg, closer, nil
}

func newGitHubClient(token string) driven.NotificationClient {
	return githubadapter.NewClient(token)
}

// newApp opens the database and wires adapters into the application
// services. The caller must call close.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Info("database opened", "path", cfg.DBPath)

	// Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Info("migrations complete")

	// Wire adapters.
	flagStore := sqliteadapter.NewFlagRepo(db)
	outcomeStore := sqliteadapter.NewOutcomeRepo(db)
	celebrationStore := sqliteadapter.NewCelebrationRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)

	presenters := present.Fanout{present.NewRecorder(celebrationStore)}
	if cfg.DesktopNotify {
		presenters = append(presenters, notify.NewDesktop())
	}

	// Resolve the token: a stored credential takes priority over the env var.
	advisory := application.NewTokenAdvisory(flagStore)
	provider := application.NewGitHubClientProvider(nil)
	credentialSvc := application.NewCredentialService(credentialStore, provider, advisory, newGitHubClient)

	if token := credentialSvc.Resolve(ctx, cfg.GitHubToken); token != "" {
		provider.Replace(newGitHubClient(token))
		slog.Info("github client created")
	} else {
		slog.Info("no github token configured, checks disabled until one is provided")
	}

	pollSvc := application.NewPollService(
		provider,
		application.NewClassifier(cfg.ApprovalMarker),
		presenters,
		outcomeStore,
		advisory,
		cfg.CheckInterval,
	)

	return &app{
		db:             db,
		pollSvc:        pollSvc,
		celebrationSvc: application.NewCelebrationService(presenters, browser.NewOpener(), celebrationStore),
		credentialSvc:  credentialSvc,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func closeLog(c io.Closer) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
	}
}
