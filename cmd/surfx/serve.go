package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/surfx/internal/config"
	"github.com/joestump/surfx/internal/db"
	"github.com/joestump/surfx/internal/handler"
	"github.com/joestump/surfx/internal/logging"
	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			codec := prefs.NewCodec(cfg.Cookie.Name)
			codec.Secure = cfg.Cookie.Secure
			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, cfg.Cookie.Secure)

			router := handler.NewRouter(handler.Deps{
				SessionManager: sessionManager,
				Catalog:        cfg.Catalog,
				Codec:          codec,
				Logger:         logger,
				NoticeDelay:    cfg.NoticeDelay,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
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

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
