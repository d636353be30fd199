package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
)

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActive returns all non-archived courses annotated with assignment
// counts, computed in a single aggregating join rather than per-course
// follow-up queries.
func (r *CourseRepository) ListActive(ctx context.Context) ([]models.CourseWithProgress, error) {
	const query = `SELECT
		c.course_id, c.course_name, c.course_code, c.color, c.credits, c.semester, c.archived, c.created_at,
		COUNT(a.assignment_id) AS total_assignments,
		COALESCE(SUM(CASE WHEN a.completed = 1 THEN 1 ELSE 0 END), 0) AS completed_assignments
	FROM courses c
	LEFT JOIN assignments a ON c.course_id = a.course_id
	WHERE c.archived = 0
	GROUP BY c.course_id
	ORDER BY c.course_name ASC`

	var courses []models.CourseWithProgress
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	return courses, nil
}

// FindByID loads a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT course_id, course_name, course_code, color, credits, semester, archived, created_at FROM courses WHERE course_id = ?`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course and assigns its generated identifier. A
// duplicate course code violates the unique constraint and surfaces as a
// driver error.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO courses (course_name, course_code, color, credits, semester, archived, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		course.Name,
		course.Code,
		course.Color,
		course.Credits,
		course.Semester,
		course.Archived,
		course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("course insert id: %w", err)
	}
	course.ID = id
	return nil
}

// Update replaces the five mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET course_name = ?, course_code = ?, color = ?, credits = ?, semester = ? WHERE course_id = ?`
	if _, err := r.db.ExecContext(ctx, query,
		course.Name,
		course.Code,
		course.Color,
		course.Credits,
		course.Semester,
		course.ID,
	); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course; the foreign key cascades to its assignments.
// Deleting an absent id is not an error.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE course_id = ?`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
