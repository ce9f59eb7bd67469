package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aajetechnology/StudyBot/internal/httpapi"
	"github.com/aajetechnology/StudyBot/internal/inbox"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
	"github.com/aajetechnology/StudyBot/internal/watcher"
)

const purgeInterval = 10 * time.Minute

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server and the optional inbox watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	log := a.logger
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           httpapi.New(a.cfg, a.deps, log).Router(),
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
	}

	errChan := make(chan error, 2)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	if a.cfg.Inbox.Enabled {
		proc := inbox.New(a.cfg, a.repo, a.pipeline, log)
		w, err := watcher.New(a.cfg.Paths.Inbox, pipeline.IsAudio, proc.Handle, watcher.Options{
			MaxConcurrent: a.cfg.Inbox.MaxConcurrent,
		}, log)
		if err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
		log.Info(ctx, "Monitoring inbox: %s (owner %s)", a.cfg.Paths.Inbox, a.cfg.Inbox.OwnerEmail)
	}

	go purgeSessions(ctx, a)

	log.Info(ctx, "Listening on %s", a.cfg.Server.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case runErr = <-errChan:
		log.Error(context.Background(), "Server error: %v", runErr)
	}

	log.Info(context.Background(), "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Shutdown: %v", err)
	}

	log.Info(shutdownCtx, "StudyBot stopped")
	return runErr
}

func purgeSessions(ctx context.Context, a *app) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := a.repo.PurgeExpired(ctx, now)
			if err != nil {
				a.logger.Warn(ctx, "Purge expired sessions: %v", err)
				continue
			}
			if n > 0 {
				a.logger.Info(ctx, "Purged %d expired sessions", n)
			}
		}
	}
}
