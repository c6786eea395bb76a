package models

import "time"

// AttendanceStatus is the mark recorded for a student on a day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a row of student_attendance. FullName is only populated
// by queries that join the registration.
type AttendanceRecord struct {
	ID        string           `db:"id" json:"id"`
	StudentID string           `db:"student_id" json:"student_id"`
	Date      Date             `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Remarks   *string          `db:"remarks" json:"remarks,omitempty"`
	FullName  string           `db:"full_name" json:"full_name,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceFilter narrows attendance listings. Zero values are ignored.
type AttendanceFilter struct {
	StudentID string
	Date      *Date
	Status    AttendanceStatus
	Limit     int
	// All lifts the listing cap for a student's own complete history.
	All       bool
}

// AttendanceSummary aggregates a student's attendance history.
type AttendanceSummary struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

// SummarizeAttendance counts marks; percentage is present over total rounded
// to the nearest whole number, and zero when there are no records.
func SummarizeAttendance(records []AttendanceRecord) AttendanceSummary {
	summary := AttendanceSummary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case AttendancePresent:
			summary.Present++
		case AttendanceAbsent:
			summary.Absent++
		case AttendanceLate:
			summary.Late++
		}
	}
	if summary.Total > 0 {
		pct := float64(summary.Present) * 100 / float64(summary.Total)
		summary.Percentage = float64(int(pct + 0.5))
	}
	return summary
}

// AttendanceHistory is a student's own attendance view.
type AttendanceHistory struct {
	Records []AttendanceRecord `json:"records"`
	Summary AttendanceSummary  `json:"summary"`
}
