package migrations

// The id column needs a different auto-increment spelling per driver, so the
// bookmarks table is created from Go rather than a shared SQL file.

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookmarks, downCreateBookmarks)
}

func upCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, createBookmarksDDL(dialect)); err != nil {
		return errors.Wrap(err, "create bookmarks table")
	}
	return nil
}

// createBookmarksDDL returns the CREATE TABLE statement for dialect. Every
// dialect enforces the same rating range.
func createBookmarksDDL(dialect string) string {
	switch dialect {
	case "postgres":
		return `CREATE TABLE IF NOT EXISTS bookmarks (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    rating      INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5)
)`
	case "mysql":
		// TEXT defaults must be expressions (MySQL 8.0.13+); CHECK is
		// enforced from 8.0.16.
		return `CREATE TABLE IF NOT EXISTS bookmarks (
    id          BIGINT AUTO_INCREMENT PRIMARY KEY,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT (''),
    rating      INT NOT NULL CHECK (rating BETWEEN 0 AND 5)
)`
	default: // sqlite3
		return `CREATE TABLE IF NOT EXISTS bookmarks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    url         TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    rating      INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5)
)`
	}
}

func downCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookmarks`)
	return err
}
