package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/classtrack/classtrack-api/internal/models"
)

// AssignmentRepository handles persistence for assignments and their audit
// trail. History rows are appended inside the same transaction as the
// mutation they describe so the two commit or roll back together.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository instantiates an assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListAll returns every assignment joined with its course display fields,
// ordered by due date. Ties keep storage order.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.AssignmentWithCourse, error) {
	const query = `SELECT
		a.assignment_id, a.course_id, a.title, a.description, a.due_date, a.priority,
		a.points, a.completed, a.completed_date, a.created_at,
		c.course_name, c.course_code, c.color AS course_color
	FROM assignments a
	INNER JOIN courses c ON a.course_id = c.course_id
	ORDER BY a.due_date ASC`

	var assignments []models.AssignmentWithCourse
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// FindByID loads a single assignment without the course join.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	const query = `SELECT assignment_id, course_id, title, description, due_date, priority, points, completed, completed_date, created_at FROM assignments WHERE assignment_id = ?`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts a new assignment and its "created" history row. A missing
// course id violates the foreign key and surfaces as a driver error.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) (err error) {
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create assignment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertAssignment = `INSERT INTO assignments (course_id, title, description, due_date, priority, points, completed, completed_date, created_at) VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?)`
	res, err := tx.ExecContext(ctx, insertAssignment,
		assignment.CourseID,
		assignment.Title,
		assignment.Description,
		assignment.DueDate,
		assignment.Priority,
		assignment.Points,
		assignment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("assignment insert id: %w", err)
	}
	assignment.ID = id

	const insertHistory = `INSERT INTO assignment_history (assignment_id, action, action_date, new_value) VALUES (?, ?, ?, ?)`
	if _, err = tx.ExecContext(ctx, insertHistory, id, models.HistoryActionCreated, time.Now().UTC(), assignment.Title); err != nil {
		return fmt.Errorf("record assignment creation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create assignment tx: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an assignment. The owning course is
// not updatable and plain edits deliberately leave no history row.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	const query = `UPDATE assignments SET title = ?, description = ?, due_date = ?, priority = ?, points = ? WHERE assignment_id = ?`
	if _, err := r.db.ExecContext(ctx, query,
		assignment.Title,
		assignment.Description,
		assignment.DueDate,
		assignment.Priority,
		assignment.Points,
		assignment.ID,
	); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// ToggleComplete flips the completion flag, maintaining completed_date (set
// on false→true, cleared on true→false) and appending a history row in the
// same transaction. It returns the new state, or sql.ErrNoRows when the
// assignment does not exist.
func (r *AssignmentRepository) ToggleComplete(ctx context.Context, id int64) (completed bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current bool
	if err = tx.GetContext(ctx, &current, `SELECT completed FROM assignments WHERE assignment_id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, err
		}
		return false, fmt.Errorf("load completion state: %w", err)
	}

	now := time.Now().UTC()
	newState := !current
	var completedDate *time.Time
	action := models.HistoryActionUncompleted
	if newState {
		completedDate = &now
		action = models.HistoryActionCompleted
	}

	if _, err = tx.ExecContext(ctx, `UPDATE assignments SET completed = ?, completed_date = ? WHERE assignment_id = ?`, newState, completedDate, id); err != nil {
		return false, fmt.Errorf("toggle assignment: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO assignment_history (assignment_id, action, action_date) VALUES (?, ?, ?)`, id, action, now); err != nil {
		return false, fmt.Errorf("record toggle: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle tx: %w", err)
	}
	return newState, nil
}

// Delete records a "deleted" history row with the title snapshot before
// removing the assignment itself. Deleting an absent id is a no-op.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete assignment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var title string
	if err = tx.GetContext(ctx, &title, `SELECT title FROM assignments WHERE assignment_id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			err = tx.Commit()
			return err
		}
		return fmt.Errorf("load assignment title: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO assignment_history (assignment_id, action, action_date, old_value) VALUES (?, ?, ?, ?)`, id, models.HistoryActionDeleted, time.Now().UTC(), title); err != nil {
		return fmt.Errorf("record assignment deletion: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM assignments WHERE assignment_id = ?`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete assignment tx: %w", err)
	}
	return nil
}

// ListDueWithinWeek returns incomplete assignments due in the next seven
// days inclusive, annotated with the whole-day distance to the due date.
// SQLite's 'now' is UTC, so all date math here is timezone-naive UTC.
func (r *AssignmentRepository) ListDueWithinWeek(ctx context.Context) ([]models.UpcomingAssignment, error) {
	const query = `SELECT
		a.assignment_id, a.title, a.due_date, a.priority, a.points,
		c.course_name, c.color AS course_color,
		CAST(julianday(a.due_date) - julianday(date('now')) AS INTEGER) AS days_until_due
	FROM assignments a
	INNER JOIN courses c ON a.course_id = c.course_id
	WHERE a.completed = 0
		AND a.due_date >= date('now')
		AND a.due_date <= date('now', '+7 days')
	ORDER BY a.due_date ASC`

	var upcoming []models.UpcomingAssignment
	if err := r.db.SelectContext(ctx, &upcoming, query); err != nil {
		return nil, fmt.Errorf("list upcoming assignments: %w", err)
	}
	return upcoming, nil
}
