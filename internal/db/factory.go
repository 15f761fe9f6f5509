package db

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// New opens a database connection for the given driver and DSN.
// Supported drivers: sqlite3, mysql, postgres.
func New(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite3":
		// modernc/sqlite registers itself as "sqlite" (CGO-free)
		db, err := sqlx.Open("sqlite", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return nil, errors.Wrap(err, "enable WAL")
		}
		return db, nil
	case "mysql":
		db, err := sqlx.Open("mysql", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open mysql")
		}
		return db, nil
	case "postgres":
		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported DB driver %q: must be sqlite3, mysql, or postgres", driver)
	}
}
