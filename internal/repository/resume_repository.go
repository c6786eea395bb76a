package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srisoftware/portal-api/internal/models"
)

// ResumeRepository persists student_resume rows, one per student.
type ResumeRepository struct {
	db *sqlx.DB
}

// NewResumeRepository constructs a ResumeRepository.
func NewResumeRepository(db *sqlx.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// FindByStudentID fetches the resume of a student.
func (r *ResumeRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Resume, error) {
	const query = `SELECT id, student_id, personal_info, skills, created_at, updated_at FROM student_resume WHERE student_id = $1 LIMIT 1`
	var resume models.Resume
	if err := r.db.GetContext(ctx, &resume, query, studentID); err != nil {
		return nil, err
	}
	return &resume, nil
}

// Upsert creates the resume or replaces its content when one exists.
func (r *ResumeRepository) Upsert(ctx context.Context, resume *models.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now
	const query = `INSERT INTO student_resume (id, student_id, personal_info, skills, created_at, updated_at)
        VALUES (:id, :student_id, :personal_info, :skills, :created_at, :updated_at)
        ON CONFLICT (student_id) DO UPDATE SET personal_info = EXCLUDED.personal_info, skills = EXCLUDED.skills, updated_at = EXCLUDED.updated_at
        RETURNING id, created_at`
	rows, err := r.db.NamedQueryContext(ctx, query, resume)
	if err != nil {
		return fmt.Errorf("upsert resume: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&resume.ID, &resume.CreatedAt); err != nil {
			return fmt.Errorf("upsert resume: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("upsert resume: %w", err)
	}
	return nil
}
