package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks/internal/config"
	"github.com/joestump/bookmarks/internal/db"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/seed"
	"github.com/joestump/bookmarks/internal/store"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load bookmarks from a YAML file",
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

			f, err := seed.NewLoader(file).Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
				return err
			}

			bookmarks := store.NewBookmarkStore(database)
			if _, err := seed.NewSeeder(bookmarks, log).Seed(cmd.Context(), f); err != nil {
				return err
			}

			total, err := bookmarks.Count(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("bookmarks stored", logger.Int64("total", total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
