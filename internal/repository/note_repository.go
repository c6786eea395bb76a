package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srisoftware/portal-api/internal/models"
)

// NoteRepository persists student_notes rows.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs a NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// List returns notes ordered by date, latest first.
func (r *NoteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	args := []interface{}{}
	where := "1=1"
	if filter.StudentID != "" {
		where = "n.student_id = $1"
		args = append(args, filter.StudentID)
	}
	query := fmt.Sprintf(`SELECT n.id, n.student_id, n.title, n.content, n.tags, n.date, n.created_at, COALESCE(s.full_name, '') AS full_name
        FROM student_notes n LEFT JOIN student_registrations s ON s.student_id = n.student_id
        WHERE %s ORDER BY n.date DESC, n.created_at DESC%s`, where, limitClause(filter.All && filter.StudentID != "", filter.Limit, 200, 1000))

	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// CreateMany inserts one note row per recipient in a single transaction.
func (r *NoteRepository) CreateMany(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range notes {
		if notes[i].ID == "" {
			notes[i].ID = uuid.NewString()
		}
		notes[i].CreatedAt = now
	}
	const query = `INSERT INTO student_notes (id, student_id, title, content, tags, date, created_at)
        VALUES (:id, :student_id, :title, :content, :tags, :date, :created_at)`
	return insertBatch(ctx, r.db, "insert notes", query, notes)
}
