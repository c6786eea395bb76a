package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/srisoftware/portal-api/internal/models"
)

// Lead is the acknowledgement of a public registration.
type Lead struct {
	ID     string               `json:"id"`
	Status models.StudentStatus `json:"status"`
}

// Register submits the public registration form.
func (c *Client) Register(ctx context.Context, req RegisterLeadRequest) (*Lead, error) {
	var lead Lead
	if _, err := c.do(ctx, http.MethodPost, "/public/register", nil, req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Verify looks up the public profile of a student.
func (c *Client) Verify(ctx context.Context, studentID string) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	if _, err := c.do(ctx, http.MethodGet, "/public/verify/"+url.PathEscape(studentID), nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// StudentLogin signs a student in and keeps the issued token.
func (c *Client) StudentLogin(ctx context.Context, studentID, password string) (*models.Session, error) {
	return c.login(ctx, "/auth/student/login", models.StudentLoginRequest{StudentID: studentID, Password: password})
}

// AdminLogin signs a staff member in and keeps the issued token.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*models.Session, error) {
	return c.login(ctx, "/auth/admin/login", models.AdminLoginRequest{Username: username, Password: password})
}

func (c *Client) login(ctx context.Context, path string, body interface{}) (*models.Session, error) {
	var session models.Session
	if _, err := c.do(ctx, http.MethodPost, path, nil, body, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Logout revokes the current token and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Session reports the view the current token maps to.
func (c *Client) Session(ctx context.Context) (*models.SessionState, error) {
	var state models.SessionState
	if _, err := c.do(ctx, http.MethodGet, "/auth/session", nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Menu returns the dashboard tabs of the signed in role.
func (c *Client) Menu(ctx context.Context, role models.UserRole) (*models.DashboardMenu, error) {
	var menu models.DashboardMenu
	if _, err := c.do(ctx, http.MethodGet, rolePrefix(role)+"/dashboard", nil, nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func rolePrefix(role models.UserRole) string {
	if role == models.RoleAdmin {
		return "/admin"
	}
	return "/student"
}

// StudentQuery filters the admin student list.
type StudentQuery struct {
	Search  string
	Trainee *bool
	Status  models.StudentStatus
	Page    int
	Limit   int
	Sort    string
	Order   string
}

func (q StudentQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "search", q.Search)
	setIf(v, "status", string(q.Status))
	setIf(v, "sort", q.Sort)
	setIf(v, "order", q.Order)
	if q.Trainee != nil {
		v.Set("trainee", strconv.FormatBool(*q.Trainee))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// Students lists registrations.
func (c *Client) Students(ctx context.Context, q StudentQuery) ([]models.StudentRegistration, *models.Pagination, error) {
	var students []models.StudentRegistration
	page, err := c.do(ctx, http.MethodGet, "/admin/students", q.values(), nil, &students)
	return students, page, err
}

// CreateStudent enrols a student.
func (c *Client) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.StudentRegistration, error) {
	var student models.StudentRegistration
	if _, err := c.do(ctx, http.MethodPost, "/admin/students", nil, req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateStudent edits a registration by row id.
func (c *Client) UpdateStudent(ctx context.Context, id string, req UpdateStudentRequest) (*models.StudentRegistration, error) {
	var student models.StudentRegistration
	if _, err := c.do(ctx, http.MethodPut, "/admin/students/"+url.PathEscape(id), nil, req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Roster lists trainees ordered by name.
func (c *Client) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	var roster []models.RosterEntry
	_, err := c.do(ctx, http.MethodGet, "/admin/roster", nil, nil, &roster)
	return roster, err
}

// Overview returns the admin detail view of one student.
func (c *Client) Overview(ctx context.Context, studentID string) (*models.StudentOverview, error) {
	var overview models.StudentOverview
	if _, err := c.do(ctx, http.MethodGet, "/admin/overview/"+url.PathEscape(studentID), nil, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Attendance lists marks for a date; a zero date means today.
func (c *Client) Attendance(ctx context.Context, date models.Date, studentID string) ([]models.AttendanceRecord, error) {
	v := url.Values{}
	if !date.IsZero() {
		v.Set("date", date.String())
	}
	setIf(v, "student_id", studentID)
	var records []models.AttendanceRecord
	_, err := c.do(ctx, http.MethodGet, "/admin/attendance", v, nil, &records)
	return records, err
}

// MarkAttendance records marks for selected students in one insert.
func (c *Client) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	_, err := c.do(ctx, http.MethodPost, "/admin/attendance", nil, req, &records)
	return records, err
}

// MarkAllPresent marks every trainee present on date.
func (c *Client) MarkAllPresent(ctx context.Context, date models.Date) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	_, err := c.do(ctx, http.MethodPost, "/admin/attendance/all-present", nil, MarkAllPresentRequest{Date: date}, &records)
	return records, err
}

// UpdateAttendance edits one mark.
func (c *Client) UpdateAttendance(ctx context.Context, id string, req UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if _, err := c.do(ctx, http.MethodPut, "/admin/attendance/"+url.PathEscape(id), nil, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteAttendance removes one mark.
func (c *Client) DeleteAttendance(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/attendance/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// Fees lists fee records.
func (c *Client) Fees(ctx context.Context, status models.PaymentStatus, search string) ([]models.FeeRecord, error) {
	v := url.Values{}
	setIf(v, "status", string(status))
	setIf(v, "search", search)
	var fees []models.FeeRecord
	_, err := c.do(ctx, http.MethodGet, "/admin/fees", v, nil, &fees)
	return fees, err
}

// CreateFee adds a fee record.
func (c *Client) CreateFee(ctx context.Context, req FeeRequest) (*models.FeeRecord, error) {
	var fee models.FeeRecord
	if _, err := c.do(ctx, http.MethodPost, "/admin/fees", nil, req, &fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

// UpdateFee replaces a fee record.
func (c *Client) UpdateFee(ctx context.Context, id string, req FeeRequest) (*models.FeeRecord, error) {
	var fee models.FeeRecord
	if _, err := c.do(ctx, http.MethodPut, "/admin/fees/"+url.PathEscape(id), nil, req, &fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

// DeleteFee removes a fee record.
func (c *Client) DeleteFee(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/fees/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// ExportFees downloads the filtered fee list as csv or pdf.
func (c *Client) ExportFees(ctx context.Context, status models.PaymentStatus, format ExportFormat) ([]byte, string, error) {
	v := url.Values{}
	setIf(v, "status", string(status))
	setIf(v, "format", string(format))
	return c.download(ctx, "/admin/fees/export", v)
}

// Notes lists notes, optionally for one student.
func (c *Client) Notes(ctx context.Context, studentID string) ([]models.Note, error) {
	v := url.Values{}
	setIf(v, "student_id", studentID)
	var notes []models.Note
	_, err := c.do(ctx, http.MethodGet, "/admin/notes", v, nil, &notes)
	return notes, err
}

// SendNote fans a note out to its audience in one insert.
func (c *Client) SendNote(ctx context.Context, req SendNoteRequest) ([]models.Note, error) {
	var notes []models.Note
	_, err := c.do(ctx, http.MethodPost, "/admin/notes", nil, req, &notes)
	return notes, err
}

// Tasks lists tasks.
func (c *Client) Tasks(ctx context.Context, status models.TaskStatus, studentID string) ([]models.Task, error) {
	v := url.Values{}
	setIf(v, "status", string(status))
	setIf(v, "student_id", studentID)
	var tasks []models.Task
	_, err := c.do(ctx, http.MethodGet, "/admin/tasks", v, nil, &tasks)
	return tasks, err
}

// AssignTasks fans a task out to its audience in one insert.
func (c *Client) AssignTasks(ctx context.Context, req AssignTaskRequest) ([]models.Task, error) {
	var tasks []models.Task
	_, err := c.do(ctx, http.MethodPost, "/admin/tasks", nil, req, &tasks)
	return tasks, err
}

// ReassignTask clones a task as fresh pending rows.
func (c *Client) ReassignTask(ctx context.Context, id string, req ReassignTaskRequest) ([]models.Task, error) {
	var tasks []models.Task
	_, err := c.do(ctx, http.MethodPost, "/admin/tasks/"+url.PathEscape(id)+"/reassign", nil, req, &tasks)
	return tasks, err
}

// GradeTask completes a submitted task.
func (c *Client) GradeTask(ctx context.Context, id string, req GradeTaskRequest) (*models.Task, error) {
	var task models.Task
	if _, err := c.do(ctx, http.MethodPost, "/admin/tasks/"+url.PathEscape(id)+"/grade", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Projects lists projects.
func (c *Client) Projects(ctx context.Context, status models.ProjectStatus, studentID string) ([]models.Project, error) {
	v := url.Values{}
	setIf(v, "status", string(status))
	setIf(v, "student_id", studentID)
	var projects []models.Project
	_, err := c.do(ctx, http.MethodGet, "/admin/projects", v, nil, &projects)
	return projects, err
}

// AssignProjects fans a project out to its audience in one insert.
func (c *Client) AssignProjects(ctx context.Context, req AssignProjectRequest) ([]models.Project, error) {
	var projects []models.Project
	_, err := c.do(ctx, http.MethodPost, "/admin/projects", nil, req, &projects)
	return projects, err
}

// CompleteProject accepts a submitted project.
func (c *Client) CompleteProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if _, err := c.do(ctx, http.MethodPost, "/admin/projects/"+url.PathEscape(id)+"/complete", nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Home returns the signed in student's landing tab.
func (c *Client) Home(ctx context.Context) (*models.StudentHome, error) {
	var home models.StudentHome
	if _, err := c.do(ctx, http.MethodGet, "/student/home", nil, nil, &home); err != nil {
		return nil, err
	}
	return &home, nil
}

// UpdatePhoto uploads a data URI profile photo and returns the stored value.
func (c *Client) UpdatePhoto(ctx context.Context, dataURI string) (string, error) {
	var out struct {
		ProfilePhotoURL string `json:"profile_photo_url"`
	}
	if _, err := c.do(ctx, http.MethodPut, "/student/photo", nil, UpdatePhotoRequest{Photo: dataURI}, &out); err != nil {
		return "", err
	}
	return out.ProfilePhotoURL, nil
}

// MyAttendance returns the signed in student's attendance history.
func (c *Client) MyAttendance(ctx context.Context) (*models.AttendanceHistory, error) {
	var history models.AttendanceHistory
	if _, err := c.do(ctx, http.MethodGet, "/student/attendance", nil, nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// MyFees returns the signed in student's fee statement.
func (c *Client) MyFees(ctx context.Context) (*models.FeeStatement, error) {
	var statement models.FeeStatement
	if _, err := c.do(ctx, http.MethodGet, "/student/fees", nil, nil, &statement); err != nil {
		return nil, err
	}
	return &statement, nil
}

// MyNotes returns the signed in student's notes.
func (c *Client) MyNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	_, err := c.do(ctx, http.MethodGet, "/student/notes", nil, nil, &notes)
	return notes, err
}

// MyTasks returns the signed in student's tasks.
func (c *Client) MyTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	_, err := c.do(ctx, http.MethodGet, "/student/tasks", nil, nil, &tasks)
	return tasks, err
}

// SubmitTask hands in a pending task.
func (c *Client) SubmitTask(ctx context.Context, id string, req SubmitTaskRequest) (*models.Task, error) {
	var task models.Task
	if _, err := c.do(ctx, http.MethodPost, "/student/tasks/"+url.PathEscape(id)+"/submit", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// MyProjects returns the signed in student's projects.
func (c *Client) MyProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	_, err := c.do(ctx, http.MethodGet, "/student/projects", nil, nil, &projects)
	return projects, err
}

// SubmitProject attaches links to a project.
func (c *Client) SubmitProject(ctx context.Context, id string, req SubmitProjectRequest) (*models.Project, error) {
	var project models.Project
	if _, err := c.do(ctx, http.MethodPost, "/student/projects/"+url.PathEscape(id)+"/submit", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Resume returns the signed in student's resume, empty when never saved.
func (c *Client) Resume(ctx context.Context) (*models.Resume, error) {
	var resume models.Resume
	if _, err := c.do(ctx, http.MethodGet, "/student/resume", nil, nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// SaveResume upserts the signed in student's resume.
func (c *Client) SaveResume(ctx context.Context, req SaveResumeRequest) (*models.Resume, error) {
	var resume models.Resume
	if _, err := c.do(ctx, http.MethodPut, "/student/resume", nil, req, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// ResumePDF downloads the rendered resume.
func (c *Client) ResumePDF(ctx context.Context) ([]byte, error) {
	body, _, err := c.download(ctx, "/student/resume/pdf", nil)
	return body, err
}
