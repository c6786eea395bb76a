package models

import "time"

// TaskStatus is the position of a task in its review cycle.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskCompleted TaskStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskSubmitted, TaskCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next directly follows s. Tasks only move
// forward: pending to submitted by the student, submitted to completed by staff.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskPending:
		return next == TaskSubmitted
	case TaskSubmitted:
		return next == TaskCompleted
	default:
		return false
	}
}

// Task is a row of student_tasks.
type Task struct {
	ID              string     `db:"id" json:"id"`
	StudentID       string     `db:"student_id" json:"student_id"`
	Title           string     `db:"title" json:"title"`
	Description     string     `db:"description" json:"description"`
	DueDate         *Date      `db:"due_date" json:"due_date,omitempty"`
	Status          TaskStatus `db:"status" json:"status"`
	SubmissionLink  *string    `db:"submission_link" json:"submission_link,omitempty"`
	SubmissionNotes *string    `db:"submission_notes" json:"submission_notes,omitempty"`
	SubmittedAt     *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	Grade           *float64   `db:"grade" json:"grade,omitempty"`
	Feedback        *string    `db:"feedback" json:"feedback,omitempty"`
	FullName        string     `db:"full_name" json:"full_name,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	StudentID string
	Status    TaskStatus
	// ByDueDate orders by due date ascending instead of newest first.
	ByDueDate bool
	Limit     int
	// All lifts the listing cap for a student's own complete history.
	All       bool
}
