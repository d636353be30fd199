package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type courseRepository interface {
	ListActive(ctx context.Context) ([]models.CourseWithProgress, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CreateCourseRequest describes the payload for creating courses. Credits is
// a pointer so zero credits can be told apart from an omitted field.
type CreateCourseRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Credits  *int   `json:"credits" validate:"required"`
	Semester string `json:"semester" validate:"required"`
}

// UpdateCourseRequest replaces the five mutable fields of a course. Partial
// patches are not supported.
type UpdateCourseRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Credits  *int   `json:"credits" validate:"required"`
	Semester string `json:"semester" validate:"required"`
}

// CourseService orchestrates course workflows.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	cache     *CacheService
	logger    *zap.Logger
}

// NewCourseService creates a new course service instance.
func NewCourseService(repo courseRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// List returns every non-archived course with its completion progress.
func (s *CourseService) List(ctx context.Context) ([]models.CourseWithProgress, error) {
	courses, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	for i := range courses {
		if courses[i].TotalAssignments > 0 {
			courses[i].Progress = round1(float64(courses[i].CompletedAssignments) / float64(courses[i].TotalAssignments) * 100)
		}
	}
	if courses == nil {
		courses = []models.CourseWithProgress{}
	}
	return courses, nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	return course, nil
}

// Create adds a new course and returns it with the generated id. A duplicate
// course code fails at the storage layer and the driver message is passed
// through.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	course := &models.Course{
		Name:     req.Name,
		Code:     req.Code,
		Color:    req.Color,
		Credits:  *req.Credits,
		Semester: req.Semester,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return course, nil
}

// Update replaces the mutable fields of an existing course. A nonexistent id
// is reported as not found rather than silently succeeding.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	course.Name = req.Name
	course.Code = req.Code
	course.Color = req.Color
	course.Credits = *req.Credits
	course.Semester = req.Semester

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return course, nil
}

// Delete removes a course and, through the cascade, all its assignments.
// Deleting an absent id succeeds.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	return nil
}
