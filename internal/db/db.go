package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"navicampus/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "navicampus.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "navicampus.db")
}

// Open opens (or creates) the SQLite database at the default location and
// runs migrations.
func Open() (*DB, error) {
	return OpenPath(dbPath())
}

// OpenPath opens the SQLite database at an explicit path.
func OpenPath(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// SqlDB exposes the underlying connection for collaborating stores.
func (d *DB) SqlDB() *sql.DB {
	return d.sql
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS nav_history (
				id               INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp        TEXT NOT NULL,
				destination_id   TEXT NOT NULL,
				destination_name TEXT NOT NULL,
				from_floor       INTEGER NOT NULL,
				to_floor         INTEGER NOT NULL,
				distance_m       INTEGER NOT NULL,
				time_min         INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_nav_history_ts ON nav_history(timestamp);

			INSERT INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}
