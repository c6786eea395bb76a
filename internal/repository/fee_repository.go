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

const feeSelect = `SELECT f.id, f.student_id, f.fee_type, f.amount, f.paid_amount, f.due_date, f.paid_date, f.payment_status,
        f.payment_method, f.transaction_id, f.remarks, f.created_at, f.updated_at,
        COALESCE(s.full_name, '') AS full_name, s.email
        FROM student_fees f LEFT JOIN student_registrations s ON s.student_id = f.student_id`

// FeeRepository persists student_fees rows.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// List returns fee records ordered by due date, latest first.
func (r *FeeRepository) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("f.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("f.payment_status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(f.student_id) LIKE $%d OR LOWER(COALESCE(s.full_name, '')) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY f.due_date DESC, f.created_at DESC", feeSelect, strings.Join(conditions, " AND "))
	fees := []models.FeeRecord{}
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}

// FindByID fetches one fee record.
func (r *FeeRepository) FindByID(ctx context.Context, id string) (*models.FeeRecord, error) {
	var fee models.FeeRecord
	if err := r.db.GetContext(ctx, &fee, feeSelect+" WHERE f.id = $1", id); err != nil {
		return nil, err
	}
	return &fee, nil
}

// Create inserts a fee record.
func (r *FeeRepository) Create(ctx context.Context, fee *models.FeeRecord) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	fee.CreatedAt = now
	fee.UpdatedAt = now
	const query = `INSERT INTO student_fees (id, student_id, fee_type, amount, paid_amount, due_date, paid_date, payment_status,
        payment_method, transaction_id, remarks, created_at, updated_at)
        VALUES (:id, :student_id, :fee_type, :amount, :paid_amount, :due_date, :paid_date, :payment_status,
        :payment_method, :transaction_id, :remarks, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create fee: %w", err)
	}
	return nil
}

// Update rewrites a fee record.
func (r *FeeRepository) Update(ctx context.Context, fee *models.FeeRecord) error {
	fee.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_fees SET student_id = :student_id, fee_type = :fee_type, amount = :amount,
        paid_amount = :paid_amount, due_date = :due_date, paid_date = :paid_date, payment_status = :payment_status,
        payment_method = :payment_method, transaction_id = :transaction_id, remarks = :remarks, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("update fee: %w", err)
	}
	return nil
}

// Delete removes a fee record. Deleting an unknown id is not an error.
func (r *FeeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM student_fees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete fee: %w", err)
	}
	return nil
}
