package models

import "database/sql"

// StatsRow carries the raw aggregates read in a single query over the whole
// assignment set. Sums and the average are nullable because SQLite returns
// NULL for aggregates over zero rows.
type StatsRow struct {
	Total              int             `db:"total"`
	Completed          sql.NullInt64   `db:"completed"`
	Overdue            sql.NullInt64   `db:"overdue"`
	TotalPoints        sql.NullInt64   `db:"total_points"`
	EarnedPoints       sql.NullInt64   `db:"earned_points"`
	AvgCompletedPoints sql.NullFloat64 `db:"avg_completed_points"`
}

// Statistics is the shaped response payload for the stats endpoint.
type Statistics struct {
	Total              int     `json:"total"`
	Completed          int     `json:"completed"`
	Overdue            int     `json:"overdue"`
	CompletionRate     float64 `json:"completionRate"`
	TotalPoints        int     `json:"totalPoints"`
	EarnedPoints       int     `json:"earnedPoints"`
	AvgCompletedPoints float64 `json:"avgCompletedPoints"`
}
