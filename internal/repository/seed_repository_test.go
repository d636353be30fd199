package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
)

func newSeedRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSeedRepositoryCountCourses(t *testing.T) {
	db, mock, cleanup := newSeedRepoMock(t)
	defer cleanup()
	repo := NewSeedRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepositoryInsertSamplesRemapsCourseIDs(t *testing.T) {
	db, mock, cleanup := newSeedRepoMock(t)
	defer cleanup()
	repo := NewSeedRepository(db)

	courses := []models.Course{
		{Name: "Applied Programming", Code: "CSE 310", Color: "#0062B8", Credits: 3, Semester: "Fall 2025"},
		{Name: "Statistics", Code: "MATH 221", Color: "#FFB81C", Credits: 3, Semester: "Fall 2025"},
	}
	assignments := []models.Assignment{
		{CourseID: 1, Title: "Probability Homework", DueDate: "2025-11-20", Priority: models.PriorityMedium, Points: 75},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("Applied Programming", "CSE 310", "#0062B8", 3, "Fall 2025", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("Statistics", "MATH 221", "#FFB81C", 3, "Fall 2025", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(int64(11), "Probability Homework", "", "2025-11-20", "medium", 75, false, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.InsertSamples(context.Background(), courses, assignments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepositoryInsertSamplesRejectsBadIndex(t *testing.T) {
	db, mock, cleanup := newSeedRepoMock(t)
	defer cleanup()
	repo := NewSeedRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("Statistics", "MATH 221", "#FFB81C", 3, "Fall 2025", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := repo.InsertSamples(context.Background(),
		[]models.Course{{Name: "Statistics", Code: "MATH 221", Color: "#FFB81C", Credits: 3, Semester: "Fall 2025"}},
		[]models.Assignment{{CourseID: 5, Title: "Orphan", DueDate: "2025-11-20", Priority: models.PriorityLow}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.NoError(t, mock.ExpectationsWereMet())
}
