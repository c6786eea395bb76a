package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type dashboardStudents interface {
	GetByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, *models.Pagination, error)
}

type dashboardAttendance interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	History(ctx context.Context, identity models.Identity) (*models.AttendanceHistory, error)
}

type dashboardFees interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error)
	Statement(ctx context.Context, identity models.Identity) (*models.FeeStatement, error)
}

type dashboardNotes interface {
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Note, error)
}

type dashboardTasks interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Task, error)
}

type dashboardProjects interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Project, error)
}

type dashboardResume interface {
	Get(ctx context.Context, identity models.Identity) (*models.Resume, error)
}

type taskCounter interface {
	CountByStatus(ctx context.Context, studentID string, status models.TaskStatus) (int, error)
}

type projectCounter interface {
	CountByStatus(ctx context.Context, studentID string, status models.ProjectStatus) (int, error)
}

var (
	adminTabs = []models.TabInfo{
		{Key: models.TabStudents, Label: "Students"},
		{Key: models.TabAttendance, Label: "Attendance"},
		{Key: models.TabFees, Label: "Fees"},
		{Key: models.TabNotes, Label: "Notes"},
		{Key: models.TabTasks, Label: "Tasks"},
		{Key: models.TabProjects, Label: "Projects"},
	}
	studentTabs = []models.TabInfo{
		{Key: models.TabHome, Label: "Home"},
		{Key: models.TabAttendance, Label: "Attendance"},
		{Key: models.TabFees, Label: "Fees"},
		{Key: models.TabNotes, Label: "Notes"},
		{Key: models.TabTasks, Label: "Tasks"},
		{Key: models.TabProjects, Label: "Projects"},
		{Key: models.TabResume, Label: "Resume"},
	}
)

const (
	overviewRecentItems      = 5
	overviewRecentAttendance = 10
)

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students   dashboardStudents
	Attendance dashboardAttendance
	Fees       dashboardFees
	Notes      dashboardNotes
	Tasks      dashboardTasks
	Projects   dashboardProjects
	Resume     dashboardResume
	TaskCount  taskCounter
	Completed  projectCounter
	Logger     *zap.Logger
}

// DashboardService composes role dashboards out of the entity services. A
// tab only ever sees the identity it is handed.
type DashboardService struct {
	students   dashboardStudents
	attendance dashboardAttendance
	fees       dashboardFees
	notes      dashboardNotes
	tasks      dashboardTasks
	projects   dashboardProjects
	resume     dashboardResume
	taskCount  taskCounter
	completed  projectCounter
	logger     *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(p DashboardServiceParams) *DashboardService {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:   p.Students,
		attendance: p.Attendance,
		fees:       p.Fees,
		notes:      p.Notes,
		tasks:      p.Tasks,
		projects:   p.Projects,
		resume:     p.Resume,
		taskCount:  p.TaskCount,
		completed:  p.Completed,
		logger:     logger,
	}
}

// Menu returns the fixed tab list for the identity's role.
func (s *DashboardService) Menu(identity models.Identity) (*models.DashboardMenu, error) {
	switch {
	case identity.IsAdmin():
		return &models.DashboardMenu{Role: identity.Role, Identity: identity, Tabs: adminTabs}, nil
	case identity.IsStudent():
		return &models.DashboardMenu{Role: identity.Role, Identity: identity, Tabs: studentTabs}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "sign in to open a dashboard")
	}
}

// Tab loads the content of one dashboard tab for identity.
func (s *DashboardService) Tab(ctx context.Context, identity models.Identity, tab models.DashboardTab) (*models.TabContent, error) {
	menu, err := s.Menu(identity)
	if err != nil {
		return nil, err
	}
	if !hasTab(menu.Tabs, tab) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown dashboard tab "+string(tab))
	}

	var data interface{}
	if identity.IsAdmin() {
		data, err = s.adminTab(ctx, tab)
	} else {
		data, err = s.studentTab(ctx, identity, tab)
	}
	if err != nil {
		return nil, err
	}
	return &models.TabContent{Tab: tab, Data: data}, nil
}

func (s *DashboardService) adminTab(ctx context.Context, tab models.DashboardTab) (interface{}, error) {
	switch tab {
	case models.TabStudents:
		students, _, err := s.students.List(ctx, models.StudentFilter{})
		return students, err
	case models.TabAttendance:
		return s.attendance.List(ctx, models.AttendanceFilter{})
	case models.TabFees:
		return s.fees.List(ctx, models.FeeFilter{})
	case models.TabNotes:
		return s.notes.List(ctx, models.NoteFilter{})
	case models.TabTasks:
		return s.tasks.List(ctx, models.TaskFilter{})
	default:
		return s.projects.List(ctx, models.ProjectFilter{})
	}
}

func (s *DashboardService) studentTab(ctx context.Context, identity models.Identity, tab models.DashboardTab) (interface{}, error) {
	switch tab {
	case models.TabHome:
		return s.Home(ctx, identity)
	case models.TabAttendance:
		return s.attendance.History(ctx, identity)
	case models.TabFees:
		return s.fees.Statement(ctx, identity)
	case models.TabNotes:
		return s.notes.ForStudent(ctx, identity)
	case models.TabTasks:
		return s.tasks.ForStudent(ctx, identity)
	case models.TabProjects:
		return s.projects.ForStudent(ctx, identity)
	default:
		return s.resume.Get(ctx, identity)
	}
}

// Home builds the student landing tab.
func (s *DashboardService) Home(ctx context.Context, identity models.Identity) (*models.StudentHome, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	student, err := s.students.GetByStudentID(ctx, identity.StudentID)
	if err != nil {
		return nil, err
	}
	pending, err := s.taskCount.CountByStatus(ctx, identity.StudentID, models.TaskPending)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count tasks")
	}
	done, err := s.completed.CountByStatus(ctx, identity.StudentID, models.ProjectCompleted)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count projects")
	}

	home := &models.StudentHome{
		StudentID:         student.Code(),
		FullName:          student.FullName,
		CourseEnrolled:    student.CourseEnrolled,
		BatchNumber:       student.BatchNumber,
		ProfilePhotoURL:   student.ProfilePhotoURL,
		ProjectScore:      student.ProjectScore,
		TestScore:         student.TestScore,
		PerformanceRating: student.PerformanceRating,
		PendingTasks:      pending,
		CompletedProjects: done,
	}
	if student.AttendancePercentage != nil {
		home.AttendancePercentage = *student.AttendancePercentage
	}
	return home, nil
}

// Overview returns a registration with its most recent activity.
func (s *DashboardService) Overview(ctx context.Context, studentID string) (*models.StudentOverview, error) {
	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	code := student.Code()
	overview := &models.StudentOverview{Student: student}

	if overview.RecentTasks, err = s.tasks.List(ctx, models.TaskFilter{StudentID: code, Limit: overviewRecentItems}); err != nil {
		return nil, err
	}
	if overview.RecentNotes, err = s.notes.List(ctx, models.NoteFilter{StudentID: code, Limit: overviewRecentItems}); err != nil {
		return nil, err
	}
	if overview.RecentProjects, err = s.projects.List(ctx, models.ProjectFilter{StudentID: code, Limit: overviewRecentItems}); err != nil {
		return nil, err
	}
	if overview.RecentAttendance, err = s.attendance.List(ctx, models.AttendanceFilter{StudentID: code, Limit: overviewRecentAttendance}); err != nil {
		return nil, err
	}
	overview.Attendance = models.SummarizeAttendance(overview.RecentAttendance)
	return overview, nil
}

func hasTab(tabs []models.TabInfo, tab models.DashboardTab) bool {
	for _, t := range tabs {
		if t.Key == tab {
			return true
		}
	}
	return false
}
