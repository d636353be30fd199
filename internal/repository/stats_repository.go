package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
)

// StatsRepository reads aggregate figures over the whole assignment set.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository instantiates a stats repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Aggregate runs the single statistics query. Overdue means incomplete with
// a due date strictly before today (UTC). Rate and rounding are applied by
// the service layer.
func (r *StatsRepository) Aggregate(ctx context.Context) (models.StatsRow, error) {
	const query = `SELECT
		COUNT(*) AS total,
		SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END) AS completed,
		SUM(CASE WHEN completed = 0 AND due_date < date('now') THEN 1 ELSE 0 END) AS overdue,
		SUM(points) AS total_points,
		SUM(CASE WHEN completed = 1 THEN points ELSE 0 END) AS earned_points,
		AVG(CASE WHEN completed = 1 THEN points ELSE NULL END) AS avg_completed_points
	FROM assignments`

	var row models.StatsRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return models.StatsRow{}, fmt.Errorf("aggregate statistics: %w", err)
	}
	return row, nil
}
