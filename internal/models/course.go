package models

import "time"

// Course is the grouping unit for assignments.
type Course struct {
	ID        int64     `db:"course_id" json:"id"`
	Name      string    `db:"course_name" json:"name"`
	Code      string    `db:"course_code" json:"code"`
	Color     string    `db:"color" json:"color"`
	Credits   int       `db:"credits" json:"credits"`
	Semester  string    `db:"semester" json:"semester"`
	Archived  bool      `db:"archived" json:"archived"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CourseWithProgress is a course annotated with assignment completion stats
// for the active-course listing. Progress is completed/total as a percentage
// rounded to one decimal, zero when the course has no assignments.
type CourseWithProgress struct {
	Course
	TotalAssignments     int     `db:"total_assignments" json:"totalAssignments"`
	CompletedAssignments int     `db:"completed_assignments" json:"completedAssignments"`
	Progress             float64 `db:"-" json:"progress"`
}
