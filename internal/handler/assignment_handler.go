package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-api/internal/models"
	"github.com/classtrack/classtrack-api/internal/service"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
	"github.com/classtrack/classtrack-api/pkg/response"
)

type assignmentService interface {
	List(ctx context.Context) ([]models.AssignmentWithCourse, error)
	Get(ctx context.Context, id int64) (*models.Assignment, error)
	Create(ctx context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, id int64, req service.UpdateAssignmentRequest) (*models.Assignment, error)
	ToggleComplete(ctx context.Context, id int64) (*service.ToggleResult, error)
	Delete(ctx context.Context, id int64) error
	UpcomingWeek(ctx context.Context) ([]models.UpcomingAssignment, error)
}

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	service assignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc assignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// List godoc
// @Summary List assignments
// @Description List every assignment joined with course name, code and color
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// Get godoc
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	assignment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": assignment.ID})
}

// Update godoc
// @Summary Update assignment
// @Description Full replace of title, description, dueDate, priority, points
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body service.UpdateAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	var req service.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "assignment updated successfully")
}

// ToggleComplete godoc
// @Summary Toggle assignment completion
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id}/complete [patch]
func (h *AssignmentHandler) ToggleComplete(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	result, err := h.service.ToggleComplete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "assignment")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "assignment deleted successfully")
}

// Week godoc
// @Summary Assignments due this week
// @Description Incomplete assignments due within the next 7 days
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments/week [get]
func (h *AssignmentHandler) Week(c *gin.Context) {
	upcoming, err := h.service.UpcomingWeek(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, upcoming)
}
