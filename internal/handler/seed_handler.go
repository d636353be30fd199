package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-api/pkg/response"
)

type seedService interface {
	Run(ctx context.Context) (bool, error)
}

// SeedHandler exposes the sample-data endpoint.
type SeedHandler struct {
	service seedService
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(svc seedService) *SeedHandler {
	return &SeedHandler{service: svc}
}

// Seed godoc
// @Summary Seed sample data
// @Description Inserts the sample dataset; no-op when any course exists
// @Tags Seed
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	seeded, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if !seeded {
		response.Message(c, "database already contains data, skipping seed")
		return
	}
	response.Message(c, "database seeded with sample data")
}
