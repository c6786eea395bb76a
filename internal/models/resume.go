package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PersonalInfo is the contact block of a resume, stored as JSONB.
type PersonalInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Summary string `json:"summary"`
}

// Value implements driver.Valuer.
func (p PersonalInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PersonalInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = PersonalInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PersonalInfo", src)
	}
}

// Resume is a row of student_resume; one per student.
type Resume struct {
	ID           string         `db:"id" json:"id,omitempty"`
	StudentID    string         `db:"student_id" json:"student_id"`
	PersonalInfo PersonalInfo   `db:"personal_info" json:"personal_info"`
	Skills       pq.StringArray `db:"skills" json:"skills"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// ResumeShare is a signed link that lets a third party download a resume.
type ResumeShare struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
