package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type statsServiceMock struct {
	resp *models.Statistics
	err  error
}

func (m *statsServiceMock) Overview(ctx context.Context) (*models.Statistics, error) {
	return m.resp, m.err
}

func TestStatsHandlerOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &statsServiceMock{resp: &models.Statistics{
		Total:              4,
		Completed:          2,
		Overdue:            1,
		CompletionRate:     50.0,
		TotalPoints:        325,
		EarnedPoints:       200,
		AvgCompletedPoints: 100.0,
	}}
	handler := NewStatsHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/stats", nil)
	c.Request = req

	handler.Overview(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env.Data.(map[string]interface{})
	assert.InDelta(t, 4, data["total"], 0.001)
	assert.InDelta(t, 50.0, data["completionRate"], 0.001)
	assert.InDelta(t, 100.0, data["avgCompletedPoints"], 0.001)
}

func TestStatsHandlerOverviewStorageError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &statsServiceMock{err: appErrors.Clone(appErrors.ErrStorage, "database is locked")}
	handler := NewStatsHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/stats", nil)
	c.Request = req

	handler.Overview(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "database is locked", env.Error)
}
