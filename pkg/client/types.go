package client

import (
	"time"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
)

// Request bodies accepted by the portal API. They are aliases so callers
// outside this module can build them without importing internal packages.
type (
	RegisterLeadRequest     = service.RegisterLeadRequest
	StudentProfileInput     = service.StudentProfileInput
	CreateStudentRequest    = service.CreateStudentRequest
	UpdateStudentRequest    = service.UpdateStudentRequest
	UpdatePhotoRequest      = service.UpdatePhotoRequest
	AttendanceEntry         = service.AttendanceEntry
	MarkAttendanceRequest   = service.MarkAttendanceRequest
	MarkAllPresentRequest   = service.MarkAllPresentRequest
	UpdateAttendanceRequest = service.UpdateAttendanceRequest
	FeeRequest              = service.FeeRequest
	ExportFormat            = service.ExportFormat
	Audience                = service.Audience
	TagList                 = service.TagList
	SendNoteRequest         = service.SendNoteRequest
	AssignTaskRequest       = service.AssignTaskRequest
	ReassignTaskRequest     = service.ReassignTaskRequest
	GradeTaskRequest        = service.GradeTaskRequest
	SubmitTaskRequest       = service.SubmitTaskRequest
	AssignProjectRequest    = service.AssignProjectRequest
	SubmitProjectRequest    = service.SubmitProjectRequest
	SaveResumeRequest       = service.SaveResumeRequest
	PersonalInfo            = models.PersonalInfo
)

// Resources returned by the portal API.
type (
	Date                = models.Date
	UserRole            = models.UserRole
	Session             = models.Session
	SessionState        = models.SessionState
	DashboardMenu       = models.DashboardMenu
	StudentStatus       = models.StudentStatus
	StudentRegistration = models.StudentRegistration
	StudentOverview     = models.StudentOverview
	StudentHome         = models.StudentHome
	PublicProfile       = models.PublicProfile
	RosterEntry         = models.RosterEntry
	Pagination          = models.Pagination
	AttendanceStatus    = models.AttendanceStatus
	AttendanceRecord    = models.AttendanceRecord
	AttendanceHistory   = models.AttendanceHistory
	PaymentStatus       = models.PaymentStatus
	FeeRecord           = models.FeeRecord
	FeeStatement        = models.FeeStatement
	Note                = models.Note
	TaskStatus          = models.TaskStatus
	Task                = models.Task
	ProjectStatus       = models.ProjectStatus
	Project             = models.Project
	Resume              = models.Resume
)

const (
	RoleAdmin   = models.RoleAdmin
	RoleStudent = models.RoleStudent

	ExportCSV = service.ExportCSV
	ExportPDF = service.ExportPDF

	AttendancePresent = models.AttendancePresent
	AttendanceAbsent  = models.AttendanceAbsent
	AttendanceLate    = models.AttendanceLate

	PaymentPending = models.PaymentPending
	PaymentPaid    = models.PaymentPaid
	PaymentOverdue = models.PaymentOverdue
	PaymentPartial = models.PaymentPartial

	TaskPending   = models.TaskPending
	TaskSubmitted = models.TaskSubmitted
	TaskCompleted = models.TaskCompleted

	ProjectInProgress = models.ProjectInProgress
	ProjectSubmitted  = models.ProjectSubmitted
	ProjectCompleted  = models.ProjectCompleted
)

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date { return models.NewDate(t) }

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(raw string) (Date, error) { return models.ParseDate(raw) }
