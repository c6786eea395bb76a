package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/srisoftware/portal-api/internal/models"
)

const projectSelect = `SELECT p.id, p.student_id, p.project_name, p.description, p.technologies, p.start_date, p.end_date, p.status,
        p.github_link, p.live_link, p.created_at, p.updated_at, COALESCE(s.full_name, '') AS full_name
        FROM student_projects p LEFT JOIN student_registrations s ON s.student_id = p.student_id`

// ProjectRepository persists student_projects rows.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository constructs a ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns projects newest first.
func (r *ProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY p.created_at DESC%s", projectSelect, strings.Join(conditions, " AND "), limitClause(filter.All && filter.StudentID != "", filter.Limit, 200, 1000))

	projects := []models.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// FindByID fetches one project.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.GetContext(ctx, &project, projectSelect+" WHERE p.id = $1", id); err != nil {
		return nil, err
	}
	return &project, nil
}

// CountByStatus counts a student's projects in the given status.
func (r *ProjectRepository) CountByStatus(ctx context.Context, studentID string, status models.ProjectStatus) (int, error) {
	var count int
	const query = `SELECT COUNT(*) FROM student_projects WHERE student_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &count, query, studentID, status); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// CreateMany inserts all projects in a single transaction.
func (r *ProjectRepository) CreateMany(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range projects {
		if projects[i].ID == "" {
			projects[i].ID = uuid.NewString()
		}
		projects[i].CreatedAt = now
		projects[i].UpdatedAt = now
	}
	const query = `INSERT INTO student_projects (id, student_id, project_name, description, technologies, start_date, end_date, status, created_at, updated_at)
        VALUES (:id, :student_id, :project_name, :description, :technologies, :start_date, :end_date, :status, :created_at, :updated_at)`
	return insertBatch(ctx, r.db, "insert projects", query, projects)
}

// SubmitLinks stores the student's links and marks the project submitted. Only
// projects owned by studentID that are not yet completed are touched.
func (r *ProjectRepository) SubmitLinks(ctx context.Context, id, studentID string, github, live *string) (bool, error) {
	const query = `UPDATE student_projects SET github_link = $3, live_link = $4, status = $5, updated_at = $6
        WHERE id = $1 AND student_id = $2 AND status = ANY($7)`
	open := pq.Array([]string{string(models.ProjectInProgress), string(models.ProjectSubmitted)})
	res, err := r.db.ExecContext(ctx, query, id, studentID, github, live, models.ProjectSubmitted, time.Now().UTC(), open)
	if err != nil {
		return false, fmt.Errorf("submit project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submit project: %w", err)
	}
	return affected > 0, nil
}

// Complete marks a submitted project completed.
func (r *ProjectRepository) Complete(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE student_projects SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, id, models.ProjectCompleted, time.Now().UTC(), models.ProjectSubmitted)
	if err != nil {
		return false, fmt.Errorf("complete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete project: %w", err)
	}
	return affected > 0, nil
}
