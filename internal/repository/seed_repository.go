package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
)

// SeedRepository inserts the sample dataset used for fresh installs.
type SeedRepository struct {
	db *sqlx.DB
}

// NewSeedRepository instantiates a seed repository.
func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// CountCourses returns the number of courses in the store.
func (r *SeedRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// InsertSamples writes the given courses and assignments in one transaction.
// Assignment CourseID values index into the courses slice and are remapped
// to the generated course ids.
func (r *SeedRepository) InsertSamples(ctx context.Context, courses []models.Course, assignments []models.Assignment) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	courseIDs := make([]int64, len(courses))

	const insertCourse = `INSERT INTO courses (course_name, course_code, color, credits, semester, archived, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)`
	for i, course := range courses {
		res, execErr := tx.ExecContext(ctx, insertCourse, course.Name, course.Code, course.Color, course.Credits, course.Semester, now)
		if execErr != nil {
			err = fmt.Errorf("seed course %s: %w", course.Code, execErr)
			return err
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			err = fmt.Errorf("seed course id: %w", idErr)
			return err
		}
		courseIDs[i] = id
	}

	const insertAssignment = `INSERT INTO assignments (course_id, title, description, due_date, priority, points, completed, completed_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, assignment := range assignments {
		idx := assignment.CourseID
		if idx < 0 || int(idx) >= len(courseIDs) {
			err = fmt.Errorf("seed assignment %q: course index %d out of range", assignment.Title, idx)
			return err
		}
		if _, execErr := tx.ExecContext(ctx, insertAssignment,
			courseIDs[idx],
			assignment.Title,
			assignment.Description,
			assignment.DueDate,
			assignment.Priority,
			assignment.Points,
			assignment.Completed,
			assignment.CompletedDate,
			now,
		); execErr != nil {
			err = fmt.Errorf("seed assignment %q: %w", assignment.Title, execErr)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
