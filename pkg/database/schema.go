package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the three tables on first run. due_date is stored
// as an ISO-8601 text date so lexicographic comparison matches calendar
// order. assignment_history.assignment_id is a soft reference: it is never
// cascaded, so audit rows outlive the assignments they describe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		course_id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_name TEXT NOT NULL,
		course_code TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL,
		credits INTEGER NOT NULL,
		semester TEXT NOT NULL,
		archived BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL,
		priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')),
		points INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT 0,
		completed_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (course_id) REFERENCES courses(course_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS assignment_history (
		history_id INTEGER PRIMARY KEY AUTOINCREMENT,
		assignment_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		action_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		old_value TEXT,
		new_value TEXT
	)`,
}

// InitSchema creates the required tables when they do not exist yet.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
