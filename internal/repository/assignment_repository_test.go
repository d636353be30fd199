package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack-api/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssignmentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"assignment_id", "course_id", "title", "description", "due_date", "priority", "points", "completed", "completed_date", "created_at", "course_name", "course_code", "course_color"}).
		AddRow(1, 1, "HW1", "", "2025-01-01", "medium", 0, false, nil, time.Now(), "Stats", "MATH 221", "#FFB81C")
	mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN courses c ON a.course_id = c.course_id")).
		WillReturnRows(rows)

	assignments, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Stats", assignments[0].CourseName)
	assert.Equal(t, "#FFB81C", assignments[0].CourseColor)
	assert.Nil(t, assignments[0].CompletedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCreateWritesHistory(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(int64(1), "HW1", "", "2025-01-01", "medium", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO assignment_history").
		WithArgs(int64(3), "created", sqlmock.AnyArg(), "HW1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assignment := &models.Assignment{CourseID: 1, Title: "HW1", DueDate: "2025-01-01", Priority: models.PriorityMedium}
	require.NoError(t, repo.Create(context.Background(), assignment))
	assert.Equal(t, int64(3), assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryToggleComplete(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT completed FROM assignments WHERE assignment_id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"completed"}).AddRow(false))
	mock.ExpectExec("UPDATE assignments SET completed").
		WithArgs(true, sqlmock.AnyArg(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO assignment_history").
		WithArgs(int64(4), "completed", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	completed, err := repo.ToggleComplete(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryToggleCompleteClearsDate(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT completed FROM assignments WHERE assignment_id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"completed"}).AddRow(true))
	mock.ExpectExec("UPDATE assignments SET completed").
		WithArgs(false, nil, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO assignment_history").
		WithArgs(int64(4), "uncompleted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	completed, err := repo.ToggleComplete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryToggleCompleteMissing(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT completed FROM assignments WHERE assignment_id = ?")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.ToggleComplete(context.Background(), 99)
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDeleteRecordsHistoryFirst(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT title FROM assignments WHERE assignment_id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("HW1"))
	mock.ExpectExec("INSERT INTO assignment_history").
		WithArgs(int64(9), "deleted", sqlmock.AnyArg(), "HW1").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("DELETE FROM assignments").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDeleteMissingIsNoOp(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT title FROM assignments WHERE assignment_id = ?")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 99))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListDueWithinWeek(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"assignment_id", "title", "due_date", "priority", "points", "course_name", "course_color", "days_until_due"}).
		AddRow(2, "Weekly Fitness Log", "2025-11-24", "medium", 50, "Personal Health", "#28A745", 3)
	mock.ExpectQuery(regexp.QuoteMeta("julianday(a.due_date) - julianday(date('now'))")).
		WillReturnRows(rows)

	upcoming, err := repo.ListDueWithinWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, 3, upcoming[0].DaysUntilDue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
