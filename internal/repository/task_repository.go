package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srisoftware/portal-api/internal/models"
)

const taskSelect = `SELECT t.id, t.student_id, t.title, t.description, t.due_date, t.status, t.submission_link, t.submission_notes,
        t.submitted_at, t.grade, t.feedback, t.created_at, t.updated_at, COALESCE(s.full_name, '') AS full_name
        FROM student_tasks t LEFT JOIN student_registrations s ON s.student_id = t.student_id`

// TaskRepository persists student_tasks rows.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks newest first, or by due date when requested.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("t.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	order := "t.created_at DESC"
	if filter.ByDueDate {
		order = "t.due_date ASC NULLS LAST, t.created_at ASC"
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s%s", taskSelect, strings.Join(conditions, " AND "), order, limitClause(filter.All && filter.StudentID != "", filter.Limit, 200, 1000))

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID fetches one task.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.GetContext(ctx, &task, taskSelect+" WHERE t.id = $1", id); err != nil {
		return nil, err
	}
	return &task, nil
}

// CountByStatus counts a student's tasks in the given status.
func (r *TaskRepository) CountByStatus(ctx context.Context, studentID string, status models.TaskStatus) (int, error) {
	var count int
	const query = `SELECT COUNT(*) FROM student_tasks WHERE student_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &count, query, studentID, status); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

// CreateMany inserts all tasks in a single transaction.
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
	}
	const query = `INSERT INTO student_tasks (id, student_id, title, description, due_date, status, created_at, updated_at)
        VALUES (:id, :student_id, :title, :description, :due_date, :status, :created_at, :updated_at)`
	return insertBatch(ctx, r.db, "insert tasks", query, tasks)
}

// Submit records a student's submission. It only touches a pending task owned
// by studentID and reports whether a row changed.
func (r *TaskRepository) Submit(ctx context.Context, id, studentID, link string, notes *string, at time.Time) (bool, error) {
	const query = `UPDATE student_tasks SET submission_link = $3, submission_notes = $4, submitted_at = $5, status = $6, updated_at = $5
        WHERE id = $1 AND student_id = $2 AND status = $7`
	res, err := r.db.ExecContext(ctx, query, id, studentID, link, notes, at, models.TaskSubmitted, models.TaskPending)
	if err != nil {
		return false, fmt.Errorf("submit task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submit task: %w", err)
	}
	return affected > 0, nil
}

// Grade completes a submitted task and reports whether a row changed.
func (r *TaskRepository) Grade(ctx context.Context, id string, grade float64, feedback *string) (bool, error) {
	const query = `UPDATE student_tasks SET grade = $2, feedback = $3, status = $4, updated_at = $5
        WHERE id = $1 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, id, grade, feedback, models.TaskCompleted, time.Now().UTC(), models.TaskSubmitted)
	if err != nil {
		return false, fmt.Errorf("grade task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("grade task: %w", err)
	}
	return affected > 0, nil
}
