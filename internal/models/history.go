package models

import (
	"database/sql"
	"time"
)

// HistoryAction enumerates recorded assignment lifecycle events.
type HistoryAction string

const (
	HistoryActionCreated     HistoryAction = "created"
	HistoryActionCompleted   HistoryAction = "completed"
	HistoryActionUncompleted HistoryAction = "uncompleted"
	HistoryActionDeleted     HistoryAction = "deleted"
)

// AssignmentHistory is an append-only audit record. AssignmentID is a soft
// reference: history rows are kept after the assignment itself is deleted.
type AssignmentHistory struct {
	ID           int64          `db:"history_id" json:"id"`
	AssignmentID int64          `db:"assignment_id" json:"assignmentId"`
	Action       HistoryAction  `db:"action" json:"action"`
	ActionDate   time.Time      `db:"action_date" json:"actionDate"`
	OldValue     sql.NullString `db:"old_value" json:"oldValue"`
	NewValue     sql.NullString `db:"new_value" json:"newValue"`
}
