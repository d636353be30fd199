package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/classtrack/classtrack-api/pkg/config"
)

// NewSQLite returns a configured client for the file-backed store.
// Foreign keys are enforced so course deletion cascades to assignments.
func NewSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout <= 0 {
		busyTimeout = 10000
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=true&_journal_mode=WAL&_busy_timeout=%d",
		cfg.Path,
		busyTimeout,
	)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
