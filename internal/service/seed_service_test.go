package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/internal/models"
)

type mockSeedRepo struct {
	count       int
	inserted    bool
	courses     []models.Course
	assignments []models.Assignment
}

func (m *mockSeedRepo) CountCourses(ctx context.Context) (int, error) {
	return m.count, nil
}

func (m *mockSeedRepo) InsertSamples(ctx context.Context, courses []models.Course, assignments []models.Assignment) error {
	m.inserted = true
	m.courses = courses
	m.assignments = assignments
	return nil
}

func TestSeedServiceRunOnEmptyStore(t *testing.T) {
	repo := &mockSeedRepo{count: 0}
	svc := NewSeedService(repo, nil, zap.NewNop())

	seeded, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.True(t, repo.inserted)
	assert.Len(t, repo.courses, 3)
	assert.Len(t, repo.assignments, 4)
}

func TestSeedServiceRunSkipsPopulatedStore(t *testing.T) {
	repo := &mockSeedRepo{count: 2}
	svc := NewSeedService(repo, nil, zap.NewNop())

	seeded, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.False(t, repo.inserted)
}

func TestSampleDataCourseReferencesAreIndexes(t *testing.T) {
	courses, assignments := sampleData()
	for _, a := range assignments {
		assert.Less(t, int(a.CourseID), len(courses))
	}
	completed := 0
	for _, a := range assignments {
		if a.Completed {
			require.NotNil(t, a.CompletedDate)
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}
