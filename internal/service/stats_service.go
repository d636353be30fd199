package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type statsRepository interface {
	Aggregate(ctx context.Context) (models.StatsRow, error)
}

// StatsService shapes the raw aggregates into the statistics payload.
type StatsService struct {
	repo    statsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStatsService creates a new stats service instance.
func NewStatsService(repo statsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Overview computes statistics over the entire assignment set. An empty set
// yields all zeroes; the null average over zero completed assignments is
// coerced to 0 rather than omitted.
func (s *StatsService) Overview(ctx context.Context) (*models.Statistics, error) {
	var cached models.Statistics
	if hit, _ := s.cache.Get(ctx, cacheKeyStats, &cached); hit {
		return &cached, nil
	}

	start := time.Now()
	row, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	s.metrics.ObserveDBQuery("stats_overview", time.Since(start))

	stats := &models.Statistics{
		Total:        row.Total,
		Completed:    int(row.Completed.Int64),
		Overdue:      int(row.Overdue.Int64),
		TotalPoints:  int(row.TotalPoints.Int64),
		EarnedPoints: int(row.EarnedPoints.Int64),
	}
	if stats.Total > 0 {
		stats.CompletionRate = round1(float64(stats.Completed) / float64(stats.Total) * 100)
	}
	if row.AvgCompletedPoints.Valid {
		stats.AvgCompletedPoints = round2(row.AvgCompletedPoints.Float64)
	}

	s.cache.Set(ctx, cacheKeyStats, stats)
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
