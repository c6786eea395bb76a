package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type projectRepository interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	CreateMany(ctx context.Context, projects []models.Project) error
	SubmitLinks(ctx context.Context, id, studentID string, github, live *string) (bool, error)
	Complete(ctx context.Context, id string) (bool, error)
}

// AssignProjectRequest creates a project for one student or all trainees.
type AssignProjectRequest struct {
	Audience
	ProjectName  string               `json:"project_name" validate:"required,notblank,max=200"`
	Description  string               `json:"description"`
	Technologies TagList              `json:"technologies"`
	StartDate    *models.Date         `json:"start_date"`
	EndDate      *models.Date         `json:"end_date"`
	Status       models.ProjectStatus `json:"status" validate:"omitempty,project_status"`
}

// SubmitProjectRequest carries a student's project links.
type SubmitProjectRequest struct {
	GithubLink *string `json:"github_link" validate:"omitempty,url"`
	LiveLink   *string `json:"live_link" validate:"omitempty,url"`
}

// ProjectService assigns and reviews projects.
type ProjectService struct {
	repo      projectRepository
	students  rosterSource
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(repo projectRepository, students rosterSource, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{repo: repo, students: students, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// List returns projects for the admin view.
func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown project status")
	}
	filter.StudentID = NormalizeStudentID(filter.StudentID)
	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list projects")
	}
	return projects, nil
}

// Assign inserts one project per target student in a single write.
func (s *ProjectService) Assign(ctx context.Context, actor models.Identity, req AssignProjectRequest) ([]models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid project payload")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(req.StartDate.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date cannot be before start date")
	}
	ids, err := resolveAudience(ctx, s.students, req.Audience)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.ProjectInProgress
	}
	technologies := pq.StringArray(req.Technologies)
	if technologies == nil {
		technologies = pq.StringArray{}
	}
	projects := fanOut(ids, func(id string) models.Project {
		return models.Project{
			StudentID:    id,
			ProjectName:  strings.TrimSpace(req.ProjectName),
			Description:  req.Description,
			Technologies: technologies,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       status,
		}
	})
	if err := s.repo.CreateMany(ctx, projects); err != nil {
		return nil, writeError(err, "failed to assign project")
	}
	s.metrics.RecordFanOut("projects", len(projects))
	auditFanOut(ctx, s.audit, actor, "projects", ids)
	return projects, nil
}

// Complete marks a submitted project completed after review.
func (s *ProjectService) Complete(ctx context.Context, actor models.Identity, id string) (*models.Project, error) {
	changed, err := s.repo.Complete(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to complete project")
	}
	if !changed {
		project, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "only submitted projects can be completed, project is "+string(project.Status))
	}
	recordChange(ctx, s.audit, actor, models.AuditActionUpdate, "projects", id, map[string]string{"status": string(models.ProjectCompleted)})
	return s.get(ctx, id)
}

// ForStudent returns the signed-in student's projects.
func (s *ProjectService) ForStudent(ctx context.Context, identity models.Identity) ([]models.Project, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	projects, err := s.repo.List(ctx, models.ProjectFilter{StudentID: identity.StudentID, All: true})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load projects")
	}
	return projects, nil
}

// Submit stores the student's links and marks the project submitted.
func (s *ProjectService) Submit(ctx context.Context, identity models.Identity, id string, req SubmitProjectRequest) (*models.Project, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid project links")
	}
	github, live := trimPtr(req.GithubLink), trimPtr(req.LiveLink)
	if github == nil && live == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide a GitHub or live link")
	}
	changed, err := s.repo.SubmitLinks(ctx, id, identity.StudentID, github, live)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to submit project")
	}
	if !changed {
		project, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		if project.StudentID != identity.StudentID {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "project is already completed")
	}
	return s.get(ctx, id)
}

func (s *ProjectService) get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Internal(err, "failed to load project")
	}
	return project, nil
}
