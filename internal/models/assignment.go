package models

import "time"

// Priority enumerates the allowed assignment priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Assignment is a gradeable task belonging to exactly one course. DueDate is
// a calendar date in ISO form; CompletedDate is set only while the
// assignment is completed.
type Assignment struct {
	ID            int64      `db:"assignment_id" json:"id"`
	CourseID      int64      `db:"course_id" json:"courseId"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	DueDate       string     `db:"due_date" json:"dueDate"`
	Priority      Priority   `db:"priority" json:"priority"`
	Points        int        `db:"points" json:"points"`
	Completed     bool       `db:"completed" json:"completed"`
	CompletedDate *time.Time `db:"completed_date" json:"completedDate"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// AssignmentWithCourse joins an assignment with display fields of its course.
type AssignmentWithCourse struct {
	Assignment
	CourseName  string `db:"course_name" json:"courseName"`
	CourseCode  string `db:"course_code" json:"courseCode"`
	CourseColor string `db:"course_color" json:"courseColor"`
}

// UpcomingAssignment is an incomplete assignment due within the next week.
type UpcomingAssignment struct {
	ID           int64    `db:"assignment_id" json:"id"`
	Title        string   `db:"title" json:"title"`
	DueDate      string   `db:"due_date" json:"dueDate"`
	Priority     Priority `db:"priority" json:"priority"`
	Points       int      `db:"points" json:"points"`
	CourseName   string   `db:"course_name" json:"courseName"`
	CourseColor  string   `db:"course_color" json:"courseColor"`
	DaysUntilDue int      `db:"days_until_due" json:"daysUntilDue"`
}
