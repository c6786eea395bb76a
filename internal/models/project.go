package models

import (
	"time"

	"github.com/lib/pq"
)

// ProjectStatus is the position of a project in its review cycle.
type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectSubmitted  ProjectStatus = "submitted"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectInProgress, ProjectSubmitted, ProjectCompleted:
		return true
	default:
		return false
	}
}

// Project is a row of student_projects.
type Project struct {
	ID           string         `db:"id" json:"id"`
	StudentID    string         `db:"student_id" json:"student_id"`
	ProjectName  string         `db:"project_name" json:"project_name"`
	Description  string         `db:"description" json:"description"`
	Technologies pq.StringArray `db:"technologies" json:"technologies"`
	StartDate    *Date          `db:"start_date" json:"start_date,omitempty"`
	EndDate      *Date          `db:"end_date" json:"end_date,omitempty"`
	Status       ProjectStatus  `db:"status" json:"status"`
	GithubLink   *string        `db:"github_link" json:"github_link,omitempty"`
	LiveLink     *string        `db:"live_link" json:"live_link,omitempty"`
	FullName     string         `db:"full_name" json:"full_name,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	StudentID string
	Status    ProjectStatus
	Limit     int
	// All lifts the listing cap for a student's own complete history.
	All       bool
}
