package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/joestump/bookmarks/internal/api"
	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/config"
	"github.com/joestump/bookmarks/internal/db"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/metrics"
	"github.com/joestump/bookmarks/internal/server"
	"github.com/joestump/bookmarks/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			app := fx.New(
				fx.Supply(cfg),
				fx.Provide(func() logger.Logger { return log }),
				fx.WithLogger(func() fxevent.Logger {
					return &fxevent.ZapLogger{Logger: log.Zap()}
				}),
				fx.Provide(
					newDatabase,
					fx.Annotate(store.NewBookmarkStore, fx.As(new(store.BookmarkRepository))),
					newRouter,
					server.New,
				),
				fx.Invoke(
					refreshBookmarkGauge,
					server.Register,
				),
			)

			if err := app.Err(); err != nil {
				return err
			}

			startCtx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := app.Start(startCtx); err != nil {
				return err
			}

			// Blocks until SIGINT/SIGTERM or a shutdown requested by the server.
			sig := <-app.Wait()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer stopCancel()
			if err := app.Stop(stopCtx); err != nil {
				return err
			}
			if sig.ExitCode != 0 {
				return fmt.Errorf("server exited with code %d", sig.ExitCode)
			}
			return nil
		},
	}
}

// newDatabase opens the configured database, applies migrations and closes
// the pool when the application stops.
func newDatabase(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
		_ = database.Close()
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return database.Close() },
	})
	return database, nil
}

func newRouter(cfg *config.Config, bookmarks store.BookmarkRepository, log logger.Logger) http.Handler {
	return api.NewRouter(api.Deps{
		BearerAuth: auth.NewBearerTokenMiddleware(cfg.API.Token),
		Bookmarks:  bookmarks,
		Logger:     log,
	})
}

// refreshBookmarkGauge seeds the bookmarks_total gauge from storage so it is
// correct before the first create or delete.
func refreshBookmarkGauge(lc fx.Lifecycle, bookmarks store.BookmarkRepository, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := bookmarks.Count(ctx)
			if err != nil {
				return err
			}
			metrics.BookmarksTotal.Set(float64(n))
			log.Info("bookmarks loaded", logger.Int64("total", n))
			return nil
		},
	})
}
