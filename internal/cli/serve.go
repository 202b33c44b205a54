package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsvp-planner/app/internal/database"
	"github.com/rsvp-planner/app/internal/handlers"
	"github.com/rsvp-planner/app/internal/notify"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}

	cmd.Flags().String("port", "8080", "port to listen on")
	_ = rootOpts.viper.BindPFlag("listen_port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, log := opts.Config, opts.Logger

	db, err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	serverOpts := handlers.Options{
		ServiceName: cfg.ServiceName,
		Version:     cfg.AppVersion,
		SessionTTL:  cfg.SessionTTL,
		Logger:      log,
	}
	if hook := notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.Timeout); hook != nil {
		serverOpts.Notifier = hook
	}

	app, err := handlers.NewServer(db, serverOpts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
