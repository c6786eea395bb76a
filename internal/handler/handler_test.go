package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srisoftware/portal-api/internal/middleware"
	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newContext(method, target, body string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func studentClaims(id string) *models.JWTClaims {
	return &models.JWTClaims{Role: models.RoleStudent, StudentID: id, FullName: "Student " + id}
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{Role: models.RoleAdmin, AdminID: "admin-1", Username: "office", FullName: "Office"}
}

type fakeStudents struct {
	profile  *models.PublicProfile
	verified []string
	lead     service.RegisterLeadRequest
}

func (f *fakeStudents) RegisterLead(ctx context.Context, req service.RegisterLeadRequest) (*models.StudentRegistration, error) {
	f.lead = req
	return &models.StudentRegistration{ID: "lead-1", FullName: req.FullName, Status: models.StudentStatusLead}, nil
}

func (f *fakeStudents) Verify(ctx context.Context, studentID string) (*models.PublicProfile, error) {
	f.verified = append(f.verified, studentID)
	if f.profile == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student ID not found in our records")
	}
	return f.profile, nil
}

type fakeShared struct{}

func (fakeShared) SharedPDF(ctx context.Context, token string) (*service.ExportFile, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "share link is not valid")
	}
	return &service.ExportFile{Filename: "resume-stu001.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}, nil
}

func TestPublicHandlerRegister(t *testing.T) {
	students := &fakeStudents{}
	h := NewPublicHandler(students, fakeShared{}, "https://portal.example.com/api/v1/public/verify", nil)

	c, rec := newContext(http.MethodPost, "/public/register", `{"full_name":"Ravi","city":"Pune"}`, nil)
	h.Register(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"lead-1","status":"lead"}`, string(decode(t, rec).Data))
	assert.Equal(t, "Pune", students.lead.City)

	c, rec = newContext(http.MethodPost, "/public/register", `{"full_name":`, nil)
	h.Register(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicHandlerVerifyNotFound(t *testing.T) {
	h := NewPublicHandler(&fakeStudents{}, fakeShared{}, "https://portal.example.com/verify", nil)

	c, rec := newContext(http.MethodGet, "/public/verify/stu404", "", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "stu404"}}
	h.Verify(c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student ID not found in our records", decode(t, rec).Error.Message)
}

func TestPublicHandlerVerificationQR(t *testing.T) {
	students := &fakeStudents{profile: &models.PublicProfile{StudentID: "STU001", FullName: "Asha Rao"}}
	h := NewPublicHandler(students, fakeShared{}, "https://portal.example.com/verify/", nil)

	c, rec := newContext(http.MethodGet, "/public/verify/stu001/qr", "", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "stu001"}}
	h.VerificationQR(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	assert.Equal(t, []string{"stu001"}, students.verified)
}

func TestPublicHandlerSharedResume(t *testing.T) {
	h := NewPublicHandler(&fakeStudents{}, fakeShared{}, "", nil)

	c, rec := newContext(http.MethodGet, "/public/resume/good", "", nil)
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	h.SharedResume(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="resume-stu001.pdf"`, rec.Header().Get("Content-Disposition"))

	c, rec = newContext(http.MethodGet, "/public/resume/bad", "", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	h.SharedResume(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeTasks struct {
	submitted struct {
		identity models.Identity
		id       string
		req      service.SubmitTaskRequest
	}
	graded service.GradeTaskRequest
}

func (f *fakeTasks) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return []models.Task{}, nil
}

func (f *fakeTasks) Assign(ctx context.Context, actor models.Identity, req service.AssignTaskRequest) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		tasks = append(tasks, models.Task{StudentID: id, Title: req.Title, Status: models.TaskPending})
	}
	return tasks, nil
}

func (f *fakeTasks) Reassign(ctx context.Context, actor models.Identity, id string, req service.ReassignTaskRequest) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTasks) Grade(ctx context.Context, actor models.Identity, id string, req service.GradeTaskRequest) (*models.Task, error) {
	f.graded = req
	return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "task is not awaiting review")
}

func (f *fakeTasks) ForStudent(ctx context.Context, identity models.Identity) ([]models.Task, error) {
	return []models.Task{{StudentID: identity.StudentID}}, nil
}

func (f *fakeTasks) Submit(ctx context.Context, identity models.Identity, id string, req service.SubmitTaskRequest) (*models.Task, error) {
	f.submitted.identity = identity
	f.submitted.id = id
	f.submitted.req = req
	return &models.Task{ID: id, StudentID: identity.StudentID, Status: models.TaskSubmitted}, nil
}

func TestTaskHandlerSubmitUsesTokenIdentity(t *testing.T) {
	tasks := &fakeTasks{}
	h := NewTaskHandler(tasks)

	body := `{"submission_link":"https://github.com/asha/api","student_id":"STU999"}`
	c, rec := newContext(http.MethodPost, "/student/tasks/t1/submit", body, studentClaims("STU001"))
	c.Params = gin.Params{{Key: "id", Value: "t1"}}
	h.Submit(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "STU001", tasks.submitted.identity.StudentID)
	assert.Equal(t, "t1", tasks.submitted.id)
	assert.Equal(t, "https://github.com/asha/api", tasks.submitted.req.SubmissionLink)
}

func TestTaskHandlerGradeConflict(t *testing.T) {
	tasks := &fakeTasks{}
	h := NewTaskHandler(tasks)

	c, rec := newContext(http.MethodPost, "/admin/tasks/t1/grade", `{"grade":90}`, adminClaims())
	c.Params = gin.Params{{Key: "id", Value: "t1"}}
	h.Grade(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode(t, rec).Error.Code)
	require.NotNil(t, tasks.graded.Grade)
	assert.Equal(t, 90.0, *tasks.graded.Grade)
}

func TestTaskHandlerAssign(t *testing.T) {
	h := NewTaskHandler(&fakeTasks{})

	c, rec := newContext(http.MethodPost, "/admin/tasks", `{"student_ids":["STU001","STU002"],"title":"Portfolio"}`, adminClaims())
	h.Assign(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &tasks))
	assert.Len(t, tasks, 2)
}

type fakeFees struct {
	filter models.FeeFilter
	format service.ExportFormat
}

func (f *fakeFees) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error) {
	f.filter = filter
	return []models.FeeRecord{}, nil
}

func (f *fakeFees) Create(ctx context.Context, actor models.Identity, req service.FeeRequest) (*models.FeeRecord, error) {
	return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be greater than zero")
}

func (f *fakeFees) Update(ctx context.Context, actor models.Identity, id string, req service.FeeRequest) (*models.FeeRecord, error) {
	return nil, nil
}

func (f *fakeFees) Delete(ctx context.Context, actor models.Identity, id string) error { return nil }

func (f *fakeFees) Statement(ctx context.Context, identity models.Identity) (*models.FeeStatement, error) {
	return &models.FeeStatement{Records: []models.FeeRecord{}}, nil
}

func (f *fakeFees) Export(ctx context.Context, filter models.FeeFilter, format service.ExportFormat) (*service.ExportFile, error) {
	f.filter = filter
	f.format = format
	return &service.ExportFile{Filename: "fees.csv", ContentType: "text/csv", Body: []byte("Student ID\n")}, nil
}

func TestFeeHandlerListFilters(t *testing.T) {
	fees := &fakeFees{}
	h := NewFeeHandler(fees)

	c, rec := newContext(http.MethodGet, "/admin/fees?status=paid&search=%20asha%20&student_id=stu001", "", adminClaims())
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.FeeFilter{StudentID: "STU001", Status: models.PaymentPaid, Search: "asha"}, fees.filter)
	assert.Equal(t, "[]", string(decode(t, rec).Data))
}

func TestFeeHandlerExport(t *testing.T) {
	fees := &fakeFees{}
	h := NewFeeHandler(fees)

	c, rec := newContext(http.MethodGet, "/admin/fees/export?status=pending", "", adminClaims())
	h.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportCSV, fees.format)
	assert.Equal(t, `attachment; filename="fees.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Student ID\n", rec.Body.String())
}

func TestFeeHandlerCreateValidation(t *testing.T) {
	h := NewFeeHandler(&fakeFees{})

	c, rec := newContext(http.MethodPost, "/admin/fees", `{"student_id":"STU001","amount":0}`, adminClaims())
	h.Create(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount must be greater than zero", decode(t, rec).Error.Message)
}

type fakeAttendance struct{ filter models.AttendanceFilter }

func (f *fakeAttendance) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	f.filter = filter
	return []models.AttendanceRecord{}, nil
}

func (f *fakeAttendance) MarkSelected(ctx context.Context, actor models.Identity, req service.MarkAttendanceRequest) ([]models.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendance) MarkAllPresent(ctx context.Context, actor models.Identity, req service.MarkAllPresentRequest) ([]models.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendance) Update(ctx context.Context, actor models.Identity, id string, req service.UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendance) Delete(ctx context.Context, actor models.Identity, id string) error {
	return nil
}

func (f *fakeAttendance) History(ctx context.Context, identity models.Identity) (*models.AttendanceHistory, error) {
	return &models.AttendanceHistory{Records: []models.AttendanceRecord{}}, nil
}

func TestAttendanceHandlerListDate(t *testing.T) {
	attendance := &fakeAttendance{}
	h := NewAttendanceHandler(attendance)

	c, rec := newContext(http.MethodGet, "/admin/attendance?date=2024-01-10", "", adminClaims())
	h.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, attendance.filter.Date)
	assert.Equal(t, "2024-01-10", attendance.filter.Date.String())

	c, rec = newContext(http.MethodGet, "/admin/attendance?date=10/01/2024", "", adminClaims())
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodDelete, "/admin/attendance/a1", "", adminClaims())
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type fakeDashboard struct {
	overviewFor string
}

func (f *fakeDashboard) Menu(identity models.Identity) (*models.DashboardMenu, error) {
	return &models.DashboardMenu{Role: identity.Role, Identity: identity}, nil
}

func (f *fakeDashboard) Tab(ctx context.Context, identity models.Identity, tab models.DashboardTab) (*models.TabContent, error) {
	if tab != models.TabHome {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown dashboard tab "+string(tab))
	}
	return &models.TabContent{Tab: tab, Data: identity.StudentID}, nil
}

func (f *fakeDashboard) Home(ctx context.Context, identity models.Identity) (*models.StudentHome, error) {
	return &models.StudentHome{StudentID: identity.StudentID, PendingTasks: 2}, nil
}

func (f *fakeDashboard) Overview(ctx context.Context, studentID string) (*models.StudentOverview, error) {
	f.overviewFor = studentID
	return &models.StudentOverview{}, nil
}

func TestDashboardHandlerTab(t *testing.T) {
	h := NewDashboardHandler(&fakeDashboard{})

	c, rec := newContext(http.MethodGet, "/student/dashboard/home", "", studentClaims("STU001"))
	c.Params = gin.Params{{Key: "tab", Value: "home"}}
	h.Tab(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tab":"home","data":"STU001"}`, string(decode(t, rec).Data))

	c, rec = newContext(http.MethodGet, "/student/dashboard/payroll", "", studentClaims("STU001"))
	c.Params = gin.Params{{Key: "tab", Value: "payroll"}}
	h.Tab(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardHandlerOverview(t *testing.T) {
	dash := &fakeDashboard{}
	h := NewDashboardHandler(dash)

	c, rec := newContext(http.MethodGet, "/admin/overview/STU001", "", adminClaims())
	c.Params = gin.Params{{Key: "studentId", Value: "STU001"}}
	h.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "STU001", dash.overviewFor)
}

type fakeAuth struct{ loggedOut *models.JWTClaims }

func (f *fakeAuth) StudentLogin(ctx context.Context, req models.StudentLoginRequest) (*models.Session, error) {
	if req.Password != "abc123" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.Session{Token: "jwt", View: models.ViewStudentDashboard, Identity: models.Identity{Role: models.RoleStudent, StudentID: req.StudentID}}, nil
}

func (f *fakeAuth) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.Session, error) {
	return nil, appErrors.ErrInvalidCredentials
}

func (f *fakeAuth) Logout(ctx context.Context, claims *models.JWTClaims, meta service.RequestMeta) error {
	f.loggedOut = claims
	return nil
}

func (f *fakeAuth) CurrentSession(claims *models.JWTClaims) models.SessionState {
	return models.SessionState{View: claims.Identity().View()}
}

func TestAuthHandlerStudentLogin(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{})

	c, rec := newContext(http.MethodPost, "/auth/student/login", `{"student_id":"STU001","password":"abc123"}`, nil)
	h.StudentLogin(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"view":"student_dashboard"`)

	c, rec = newContext(http.MethodPost, "/auth/student/login", `{"student_id":"STU001","password":"nope"}`, nil)
	h.StudentLogin(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode(t, rec).Error.Message)
}

func TestAuthHandlerLogoutAndSession(t *testing.T) {
	auth := &fakeAuth{}
	h := NewAuthHandler(auth)

	claims := studentClaims("STU001")
	c, rec := newContext(http.MethodPost, "/auth/logout", "", claims)
	h.Logout(c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Same(t, claims, auth.loggedOut)

	c, rec = newContext(http.MethodGet, "/auth/session", "", nil)
	h.Session(c)
	assert.JSONEq(t, `{"view":"public_site"}`, string(decode(t, rec).Data))
}
