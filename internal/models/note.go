package models

import (
	"time"

	"github.com/lib/pq"
)

// Note is a row of student_notes.
type Note struct {
	ID          string         `db:"id" json:"id"`
	StudentID   string         `db:"student_id" json:"student_id"`
	Title       string         `db:"title" json:"title"`
	Content     string         `db:"content" json:"content"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Date        Date           `db:"date" json:"date"`
	FullName    string         `db:"full_name" json:"full_name,omitempty"`
	ContentHTML string         `db:"-" json:"content_html,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// NoteFilter narrows note listings.
type NoteFilter struct {
	StudentID string
	Limit     int
	// All lifts the listing cap for a student's own complete history.
	All       bool
}
