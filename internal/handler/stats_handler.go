package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-api/internal/models"
	"github.com/classtrack/classtrack-api/pkg/response"
)

type statsService interface {
	Overview(ctx context.Context) (*models.Statistics, error)
}

// StatsHandler exposes the aggregate statistics endpoint.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs a stats handler.
func NewStatsHandler(svc statsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Overview godoc
// @Summary Overall statistics
// @Description Counts, completion rate and points over all assignments
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
