package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/browser"
	"github.com/ericfisherdev/prcelebration/internal/adapter/driven/notify"
	httphandler "github.com/ericfisherdev/prcelebration/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/prcelebration/internal/adapter/driving/web"
	"github.com/ericfisherdev/prcelebration/internal/application"
)

// RunCmd polls notifications on an interval and serves the panel and the
// control API until interrupted.
type RunCmd struct{}

// Run starts the long-running service.
func (c *RunCmd) Run() error {
	// 1. Load configuration and logging.
	cfg, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer closeLog(logCloser)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open storage and wire services.
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	// 4. Register API and panel routes.
	logger := slog.Default()
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(a.pollSvc, a.celebrationSvc, a.credentialSvc, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(a.celebrationSvc, logger))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.ApplyMiddleware(mux, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 5. Run the poll loop and the HTTP server until either fails or a
	// shutdown signal arrives.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.pollSvc.Start(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		// Graceful shutdown with 10s timeout for HTTP server drain.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	slog.Info("prcelebration started",
		"listen_addr", cfg.ListenAddr,
		"check_interval", cfg.CheckInterval,
		"version", Version,
	)

	// 6. Wait for every goroutine to exit.
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("shutdown complete")
	return nil
}

// CheckCmd runs one notification check and prints its summary as JSON.
type CheckCmd struct{}

// Run performs a single check.
func (c *CheckCmd) Run() error {
	cfg, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer closeLog(logCloser)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.pollSvc.CheckNow(ctx)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// TestCmd shows the celebratory then the sad notice for a sample pull
// request. It uses no network and no storage.
type TestCmd struct{}

// Run presents the test pair on the desktop.
func (c *TestCmd) Run() error {
	_, logCloser, err := setup()
	if err != nil {
		return err
	}
	defer closeLog(logCloser)

	svc := application.NewCelebrationService(notify.NewDesktop(), browser.NewOpener(), nil)
	return svc.Test(context.Background())
}
