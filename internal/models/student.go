package models

import "time"

// StudentStatus tracks where a registration is in the enrollment funnel.
type StudentStatus string

const (
	StudentStatusLead      StudentStatus = "lead"
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusCompleted StudentStatus = "completed"
	StudentStatusDropped   StudentStatus = "dropped"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusLead, StudentStatusActive, StudentStatusInactive, StudentStatusCompleted, StudentStatusDropped:
		return true
	default:
		return false
	}
}

// StudentRegistration is a row of student_registrations. Leads created by the
// public form have no StudentID and no password until staff enrol them.
type StudentRegistration struct {
	ID                     string        `db:"id" json:"id"`
	StudentID              *string       `db:"student_id" json:"student_id,omitempty"`
	FullName               string        `db:"full_name" json:"full_name"`
	Email                  *string       `db:"email" json:"email,omitempty"`
	MobileNumber           *string       `db:"mobile_number" json:"mobile_number,omitempty"`
	AlternateMobileNumber  *string       `db:"alternate_mobile_number" json:"alternate_mobile_number,omitempty"`
	PasswordHash           *string       `db:"password_hash" json:"-"`
	DateOfBirth            *Date         `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender                 *string       `db:"gender" json:"gender,omitempty"`
	BloodGroup             *string       `db:"blood_group" json:"blood_group,omitempty"`
	FatherName             *string       `db:"father_name" json:"father_name,omitempty"`
	MotherName             *string       `db:"mother_name" json:"mother_name,omitempty"`
	CurrentAddress         *string       `db:"current_address" json:"current_address,omitempty"`
	PermanentAddress       *string       `db:"permanent_address" json:"permanent_address,omitempty"`
	City                   *string       `db:"city" json:"city,omitempty"`
	EmergencyContactName   *string       `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string       `db:"emergency_contact_number" json:"emergency_contact_number,omitempty"`
	CollegeName            *string       `db:"college_name" json:"college_name,omitempty"`
	EducationQualification *string       `db:"education_qualification" json:"education_qualification,omitempty"`
	DegreeType             *string       `db:"degree_type" json:"degree_type,omitempty"`
	BranchSpecialization   *string       `db:"branch_specialization" json:"branch_specialization,omitempty"`
	UniversityBoard        *string       `db:"university_board" json:"university_board,omitempty"`
	YearOfGraduation       *int          `db:"year_of_graduation" json:"year_of_graduation,omitempty"`
	CGPA                   *float64      `db:"cgpa" json:"cgpa,omitempty"`
	PreviousEducation      *string       `db:"previous_education" json:"previous_education,omitempty"`
	CourseEnrolled         *string       `db:"course_enrolled" json:"course_enrolled,omitempty"`
	BatchNumber            *string       `db:"batch_number" json:"batch_number,omitempty"`
	EnrollmentDate         *Date         `db:"enrollment_date" json:"enrollment_date,omitempty"`
	Status                 StudentStatus `db:"status" json:"status"`
	Remarks                *string       `db:"remarks" json:"remarks,omitempty"`
	IsTrainee              bool          `db:"is_trainee" json:"is_trainee"`
	AttendancePercentage   *float64      `db:"attendance_percentage" json:"attendance_percentage,omitempty"`
	PerformanceRating      *string       `db:"performance_rating" json:"performance_rating,omitempty"`
	ProjectScore           *float64      `db:"project_score" json:"project_score,omitempty"`
	TestScore              *float64      `db:"test_score" json:"test_score,omitempty"`
	ProfilePhotoURL        *string       `db:"profile_photo_url" json:"profile_photo_url,omitempty"`
	CreatedAt              time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time     `db:"updated_at" json:"updated_at"`
}

// Code returns the student ID or an empty string for leads.
func (s *StudentRegistration) Code() string {
	if s == nil || s.StudentID == nil {
		return ""
	}
	return *s.StudentID
}

// StudentFilter captures filtering criteria for listing registrations.
type StudentFilter struct {
	Search    string
	IsTrainee *bool
	Status    StudentStatus
	Course    string
	Batch     string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// RosterEntry is a trainee as offered in admin pickers.
type RosterEntry struct {
	StudentID string  `db:"student_id" json:"student_id"`
	FullName  string  `db:"full_name" json:"full_name"`
	Email     *string `db:"email" json:"email,omitempty"`
}

// PublicProfile is what the verification lookup discloses to third parties.
type PublicProfile struct {
	StudentID              string        `json:"student_id"`
	FullName               string        `json:"full_name"`
	CourseEnrolled         *string       `json:"course_enrolled,omitempty"`
	BatchNumber            *string       `json:"batch_number,omitempty"`
	EnrollmentDate         *Date         `json:"enrollment_date,omitempty"`
	Status                 StudentStatus `json:"status"`
	CollegeName            *string       `json:"college_name,omitempty"`
	EducationQualification *string       `json:"education_qualification,omitempty"`
	BranchSpecialization   *string       `json:"branch_specialization,omitempty"`
	YearOfGraduation       *int          `json:"year_of_graduation,omitempty"`
	CGPA                   *float64      `json:"cgpa,omitempty"`
	AttendancePercentage   *float64      `json:"attendance_percentage,omitempty"`
	PerformanceRating      *string       `json:"performance_rating,omitempty"`
	ProjectScore           *float64      `json:"project_score,omitempty"`
	TestScore              *float64      `json:"test_score,omitempty"`
}

// PublicProfileOf projects a registration onto its public fields.
func PublicProfileOf(s *StudentRegistration) PublicProfile {
	return PublicProfile{
		StudentID:              s.Code(),
		FullName:               s.FullName,
		CourseEnrolled:         s.CourseEnrolled,
		BatchNumber:            s.BatchNumber,
		EnrollmentDate:         s.EnrollmentDate,
		Status:                 s.Status,
		CollegeName:            s.CollegeName,
		EducationQualification: s.EducationQualification,
		BranchSpecialization:   s.BranchSpecialization,
		YearOfGraduation:       s.YearOfGraduation,
		CGPA:                   s.CGPA,
		AttendancePercentage:   s.AttendancePercentage,
		PerformanceRating:      s.PerformanceRating,
		ProjectScore:           s.ProjectScore,
		TestScore:              s.TestScore,
	}
}

// StudentOverview is the admin detail view of one student.
type StudentOverview struct {
	Student          *StudentRegistration `json:"student"`
	RecentTasks      []Task               `json:"recent_tasks"`
	RecentNotes      []Note               `json:"recent_notes"`
	RecentProjects   []Project            `json:"recent_projects"`
	RecentAttendance []AttendanceRecord   `json:"recent_attendance"`
	Attendance       AttendanceSummary    `json:"attendance"`
}

// StudentHome is the landing tab of the student dashboard.
type StudentHome struct {
	StudentID            string   `json:"student_id"`
	FullName             string   `json:"full_name"`
	CourseEnrolled       *string  `json:"course_enrolled,omitempty"`
	BatchNumber          *string  `json:"batch_number,omitempty"`
	ProfilePhotoURL      *string  `json:"profile_photo_url,omitempty"`
	AttendancePercentage float64  `json:"attendance_percentage"`
	ProjectScore         *float64 `json:"project_score,omitempty"`
	TestScore            *float64 `json:"test_score,omitempty"`
	PerformanceRating    *string  `json:"performance_rating,omitempty"`
	PendingTasks         int      `json:"pending_tasks"`
	CompletedProjects    int      `json:"completed_projects"`
}
