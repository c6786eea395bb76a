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

// AttendanceRepository persists student_attendance rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance joined with the student's name, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("a.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", len(args)+1))
		args = append(args, *filter.Date)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	limit := limitClause(filter.All && filter.StudentID != "", filter.Limit, 500, 2000)

	query := fmt.Sprintf(`SELECT a.id, a.student_id, a.date, a.status, a.remarks, a.created_at, a.updated_at, COALESCE(s.full_name, '') AS full_name
        FROM student_attendance a LEFT JOIN student_registrations s ON s.student_id = a.student_id
        WHERE %s ORDER BY a.date DESC, full_name ASC%s`, strings.Join(conditions, " AND "), limit)

	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches one attendance row.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	const query = `SELECT id, student_id, date, status, remarks, created_at, updated_at FROM student_attendance WHERE id = $1`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateMany inserts all records in a single transaction. A duplicate
// (student_id, date) pair fails the whole batch.
func (r *AttendanceRepository) CreateMany(ctx context.Context, records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
	}
	const query = `INSERT INTO student_attendance (id, student_id, date, status, remarks, created_at, updated_at)
        VALUES (:id, :student_id, :date, :status, :remarks, :created_at, :updated_at)`
	return insertBatch(ctx, r.db, "insert attendance", query, records)
}

// Update changes the status and remarks of one row.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_attendance SET status = :status, remarks = :remarks, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes one row. Deleting an unknown id is not an error.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM student_attendance WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
