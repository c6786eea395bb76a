package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	CreateMany(ctx context.Context, tasks []models.Task) error
	Submit(ctx context.Context, id, studentID, link string, notes *string, at time.Time) (bool, error)
	Grade(ctx context.Context, id string, grade float64, feedback *string) (bool, error)
}

// AssignTaskRequest creates a pending task for one, several or all trainees.
type AssignTaskRequest struct {
	Audience
	Title       string       `json:"title" validate:"required,notblank,max=200"`
	Description string       `json:"description"`
	DueDate     *models.Date `json:"due_date"`
}

// ReassignTaskRequest clones an existing task to other students.
type ReassignTaskRequest struct {
	Audience
}

// SubmitTaskRequest is a student's submission.
type SubmitTaskRequest struct {
	SubmissionLink  string  `json:"submission_link" validate:"required,url"`
	SubmissionNotes *string `json:"submission_notes"`
}

// GradeTaskRequest completes a submitted task.
type GradeTaskRequest struct {
	Grade    *float64 `json:"grade" validate:"required,task_grade"`
	Feedback *string  `json:"feedback"`
}

// TaskService assigns, submits and grades tasks. Status only moves
// pending -> submitted (student) -> completed (admin).
type TaskService struct {
	repo      taskRepository
	students  rosterSource
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService constructs the task service.
func NewTaskService(repo taskRepository, students rosterSource, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, students: students, audit: audit, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// List returns tasks for the admin view.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown task status")
	}
	filter.StudentID = NormalizeStudentID(filter.StudentID)
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list tasks")
	}
	return tasks, nil
}

// Assign inserts one pending task per target student in a single write.
func (s *TaskService) Assign(ctx context.Context, actor models.Identity, req AssignTaskRequest) ([]models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid task payload")
	}
	ids, err := resolveAudience(ctx, s.students, req.Audience)
	if err != nil {
		return nil, err
	}
	template := models.Task{Title: strings.TrimSpace(req.Title), Description: req.Description, DueDate: req.DueDate}
	return s.create(ctx, actor, template, ids)
}

// Reassign clones title, description and due date of task id as fresh
// pending tasks for the chosen students.
func (s *TaskService) Reassign(ctx context.Context, actor models.Identity, id string, req ReassignTaskRequest) ([]models.Task, error) {
	source, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := resolveAudience(ctx, s.students, req.Audience)
	if err != nil {
		return nil, err
	}
	template := models.Task{Title: source.Title, Description: source.Description, DueDate: source.DueDate}
	return s.create(ctx, actor, template, ids)
}

func (s *TaskService) create(ctx context.Context, actor models.Identity, template models.Task, ids []string) ([]models.Task, error) {
	tasks := fanOut(ids, func(id string) models.Task {
		task := template
		task.StudentID = id
		task.Status = models.TaskPending
		return task
	})
	if err := s.repo.CreateMany(ctx, tasks); err != nil {
		return nil, writeError(err, "failed to assign task")
	}
	s.metrics.RecordFanOut("tasks", len(tasks))
	auditFanOut(ctx, s.audit, actor, "tasks", ids)
	return tasks, nil
}

// Grade completes a submitted task.
func (s *TaskService) Grade(ctx context.Context, actor models.Identity, id string, req GradeTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid grade payload")
	}
	feedback := trimPtr(req.Feedback)
	changed, err := s.repo.Grade(ctx, id, *req.Grade, feedback)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to grade task")
	}
	if !changed {
		return nil, s.rejectTransition(ctx, id, "", models.TaskCompleted)
	}
	recordChange(ctx, s.audit, actor, models.AuditActionUpdate, "tasks", id, map[string]interface{}{"grade": *req.Grade})
	return s.get(ctx, id)
}

// ForStudent returns the signed-in student's tasks, earliest due first.
func (s *TaskService) ForStudent(ctx context.Context, identity models.Identity) ([]models.Task, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	tasks, err := s.repo.List(ctx, models.TaskFilter{StudentID: identity.StudentID, ByDueDate: true, All: true})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load tasks")
	}
	return tasks, nil
}

// Submit moves the student's own pending task to submitted.
func (s *TaskService) Submit(ctx context.Context, identity models.Identity, id string, req SubmitTaskRequest) (*models.Task, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid submission")
	}
	changed, err := s.repo.Submit(ctx, id, identity.StudentID, strings.TrimSpace(req.SubmissionLink), trimPtr(req.SubmissionNotes), s.now().UTC())
	if err != nil {
		return nil, appErrors.Internal(err, "failed to submit task")
	}
	if !changed {
		return nil, s.rejectTransition(ctx, id, identity.StudentID, models.TaskSubmitted)
	}
	return s.get(ctx, id)
}

// rejectTransition explains why a guarded update touched no row.
func (s *TaskService) rejectTransition(ctx context.Context, id, owner string, next models.TaskStatus) error {
	task, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if owner != "" && task.StudentID != owner {
		return appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	if !task.Status.CanTransitionTo(next) {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "task is "+string(task.Status)+" and cannot become "+string(next))
	}
	return appErrors.Clone(appErrors.ErrConflict, "task changed concurrently, reload and retry")
}

func (s *TaskService) get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Internal(err, "failed to load task")
	}
	return task, nil
}
