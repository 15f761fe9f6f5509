package db

import (
	"embed"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/joestump/bookmarks/internal/db/migrations"
	"github.com/joestump/bookmarks/internal/logger"
)

//go:embed migrations
var Migrations embed.FS

// Migrate runs all pending goose migrations from the embedded migration files
// and reports progress through log.
// It must be called before the HTTP server starts accepting requests.
func Migrate(db *sqlx.DB, driver string, log logger.Logger) error {
	dialect, err := GooseDialect(driver)
	if err != nil {
		return err
	}

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}
	migrations.SetDialect(dialect)

	sub, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "sub migrations fs")
	}

	goose.SetBaseFS(sub)
	goose.SetLogger(gooseLogger{log: log})
	defer func() {
		goose.SetBaseFS(nil)
		goose.SetLogger(goose.NopLogger())
	}()
	if err := goose.Up(db.DB, "."); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return nil
}

// GooseDialect maps a configured driver name to its goose dialect.
func GooseDialect(driver string) (string, error) {
	switch driver {
	case "sqlite3":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", errors.Errorf("unknown driver for goose dialect: %q", driver)
	}
}
