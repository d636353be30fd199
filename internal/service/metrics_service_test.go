package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
)

func dbQuerySampleCount(t *testing.T, m *MetricsService, query string) uint64 {
	t.Helper()
	families, err := m.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "db_query_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "query" && label.GetValue() == query {
					return metric.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestMetricsServiceObservesStatsQuery(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewStatsService(&mockStatsRepo{}, nil, metrics, zap.NewNop())

	_, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), dbQuerySampleCount(t, metrics, "stats_overview"))
}

func TestMetricsServiceObservesAssignmentQueries(t *testing.T) {
	metrics := NewMetricsService()
	repo := &mockAssignmentRepo{items: map[int64]*models.Assignment{
		1: {ID: 1, Title: "HW1"},
	}}
	svc := NewAssignmentService(repo, nil, nil, metrics, zap.NewNop())

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.UpcomingWeek(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), dbQuerySampleCount(t, metrics, "assignments_list"))
	assert.Equal(t, uint64(1), dbQuerySampleCount(t, metrics, "assignments_week"))
}

func TestMetricsServiceCacheLookupCounters(t *testing.T) {
	metrics := NewMetricsService()
	metrics.RecordCacheLookup(true)
	metrics.RecordCacheLookup(false)
	metrics.RecordCacheLookup(false)

	families, err := metrics.registry.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range families {
		if len(mf.GetMetric()) == 1 && mf.GetMetric()[0].GetCounter() != nil {
			counts[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, counts["cache_hits_total"])
	assert.Equal(t, 2.0, counts["cache_misses_total"])
}
