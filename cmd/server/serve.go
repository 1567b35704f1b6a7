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
	"go.uber.org/zap"

	"tour-manager/internal/bot"
	"tour-manager/internal/handlers"
	"tour-manager/internal/service"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("Running database migrations...")
	if err := db.RunMigrations(ctx); err != nil {
		return err
	}

	notifier, err := newNotifier()
	if err != nil {
		return err
	}

	h := handlers.New(
		service.NewClientService(db, log),
		service.NewGuideService(db, log),
		service.NewTourService(db, notifier, service.NotifyConfig{
			Timeout:     cfg.Notify.Timeout,
			Concurrency: cfg.Notify.Concurrency,
		}, log),
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newNotifier returns the Telegram sender, or a log-only one when no token is set.
func newNotifier() (service.Notifier, error) {
	if cfg.Telegram.Token == "" {
		log.Warn("TELEGRAM_BOT_TOKEN is not set, guide notifications will only be logged")
		return bot.NewLogNotifier(log), nil
	}
	b, err := bot.New(cfg.Telegram, log)
	if err != nil {
		return nil, err
	}
	return b, nil
}
