package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type assignmentRepository interface {
	ListAll(ctx context.Context) ([]models.AssignmentWithCourse, error)
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	ToggleComplete(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	ListDueWithinWeek(ctx context.Context) ([]models.UpcomingAssignment, error)
}

// CreateAssignmentRequest describes the payload for creating assignments.
// Description and points are optional and default to "" and 0.
type CreateAssignmentRequest struct {
	CourseID    int64           `json:"courseId" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    models.Priority `json:"priority" validate:"required,oneof=low medium high"`
	Points      int             `json:"points"`
}

// UpdateAssignmentRequest replaces the mutable fields of an assignment. The
// owning course cannot be changed.
type UpdateAssignmentRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    models.Priority `json:"priority" validate:"required,oneof=low medium high"`
	Points      int             `json:"points"`
}

// ToggleResult reports the completion state after a toggle.
type ToggleResult struct {
	Completed bool `json:"completed"`
}

// AssignmentService orchestrates assignment workflows.
type AssignmentService struct {
	repo      assignmentRepository
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAssignmentService creates a new assignment service instance.
func NewAssignmentService(repo assignmentRepository, validate *validator.Validate, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, validator: validate, cache: cache, metrics: metrics, logger: logger}
}

// List returns every assignment with its course display fields.
func (s *AssignmentService) List(ctx context.Context) ([]models.AssignmentWithCourse, error) {
	start := time.Now()
	assignments, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	s.metrics.ObserveDBQuery("assignments_list", time.Since(start))
	if assignments == nil {
		assignments = []models.AssignmentWithCourse{}
	}
	return assignments, nil
}

// Get returns an assignment by ID, without the course join.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	return assignment, nil
}

// Create adds a new assignment; the repository writes the matching history
// row in the same transaction. A courseId referencing no course fails the
// foreign key at the storage layer.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Points:      req.Points,
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return assignment, nil
}

// Update replaces the mutable fields of an assignment. Plain edits leave no
// history row; only create, toggle and delete are audited. A nonexistent id
// is reported as not found.
func (s *AssignmentService) Update(ctx context.Context, id int64, req UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate
	assignment.Priority = req.Priority
	assignment.Points = req.Points

	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return assignment, nil
}

// ToggleComplete flips the completion flag and reports the new state. The
// not-found case is distinct from a successful toggle to false.
func (s *AssignmentService) ToggleComplete(ctx context.Context, id int64) (*ToggleResult, error) {
	completed, err := s.repo.ToggleComplete(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return &ToggleResult{Completed: completed}, nil
}

// Delete removes an assignment, recording the deletion in the audit trail
// first. Deleting an absent id succeeds.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return nil
}

// UpcomingWeek returns incomplete assignments due within the next seven
// days, served from the cache when enabled.
func (s *AssignmentService) UpcomingWeek(ctx context.Context) ([]models.UpcomingAssignment, error) {
	var cached []models.UpcomingAssignment
	if hit, _ := s.cache.Get(ctx, cacheKeyUpcoming, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	upcoming, err := s.repo.ListDueWithinWeek(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	s.metrics.ObserveDBQuery("assignments_week", time.Since(start))
	if upcoming == nil {
		upcoming = []models.UpcomingAssignment{}
	}

	s.cache.Set(ctx, cacheKeyUpcoming, upcoming)
	return upcoming, nil
}
