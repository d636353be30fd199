package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
	appErrors "github.com/classtrack/classtrack-api/pkg/errors"
)

type seedRepository interface {
	CountCourses(ctx context.Context) (int, error)
	InsertSamples(ctx context.Context, courses []models.Course, assignments []models.Assignment) error
}

// SeedService installs the sample dataset on an empty store.
type SeedService struct {
	repo   seedRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewSeedService creates a new seed service instance.
func NewSeedService(repo seedRepository, cache *CacheService, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{repo: repo, cache: cache, logger: logger}
}

// sample dataset for fresh installs. Assignment CourseID values index into
// the course slice; the repository remaps them to generated ids.
func sampleData() ([]models.Course, []models.Assignment) {
	completedAt := time.Date(2025, time.November, 8, 15, 30, 0, 0, time.UTC)

	courses := []models.Course{
		{Name: "Applied Programming", Code: "CSE 310", Color: "#0062B8", Credits: 3, Semester: "Fall 2025"},
		{Name: "Personal Health", Code: "PUBH 132", Color: "#28A745", Credits: 2, Semester: "Fall 2025"},
		{Name: "Statistics", Code: "MATH 221", Color: "#FFB81C", Credits: 3, Semester: "Fall 2025"},
	}

	assignments := []models.Assignment{
		{CourseID: 0, Title: "JavaScript Module", Description: "Build task manager with localStorage", DueDate: "2025-11-22", Priority: models.PriorityHigh, Points: 100, Completed: true, CompletedDate: &completedAt},
		{CourseID: 0, Title: "REST API Backend", Description: "Implement REST API with SQLite", DueDate: "2025-11-22", Priority: models.PriorityHigh, Points: 100},
		{CourseID: 1, Title: "Weekly Fitness Log", Description: "Track 150 minutes of activity", DueDate: "2025-11-24", Priority: models.PriorityMedium, Points: 50},
		{CourseID: 2, Title: "Probability Homework", Description: "Complete chapter 5 problems", DueDate: "2025-11-20", Priority: models.PriorityMedium, Points: 75},
	}

	return courses, assignments
}

// Run seeds the store if it is empty. It reports whether any rows were
// written; a second run detects existing courses and inserts nothing.
func (s *SeedService) Run(ctx context.Context) (bool, error) {
	count, err := s.repo.CountCourses(ctx)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}
	if count > 0 {
		s.logger.Info("seed skipped, store already populated", zap.Int("courses", count))
		return false, nil
	}

	courses, assignments := sampleData()
	if err := s.repo.InsertSamples(ctx, courses, assignments); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, err.Error())
	}

	s.cache.Invalidate(ctx, cacheKeyPattern)
	s.logger.Info("sample data inserted", zap.Int("courses", len(courses)), zap.Int("assignments", len(assignments)))
	return true, nil
}
