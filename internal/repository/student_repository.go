package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/srisoftware/portal-api/internal/models"
)

const studentColumns = `id, student_id, full_name, email, mobile_number, alternate_mobile_number, password_hash, date_of_birth, gender, blood_group,
        father_name, mother_name, current_address, permanent_address, city, emergency_contact_name, emergency_contact_number,
        college_name, education_qualification, degree_type, branch_specialization, university_board, year_of_graduation, cgpa,
        previous_education, course_enrolled, batch_number, enrollment_date, status, remarks, is_trainee,
        attendance_percentage, performance_rating, project_score, test_score, profile_photo_url, created_at, updated_at`

// StudentRepository manages persistence for student registrations.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns registrations matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.IsTrainee != nil {
		conditions = append(conditions, fmt.Sprintf("is_trainee = $%d", len(args)+1))
		args = append(args, *filter.IsTrainee)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("course_enrolled = $%d", len(args)+1))
		args = append(args, filter.Course)
	}
	if filter.Batch != "" {
		conditions = append(conditions, fmt.Sprintf("batch_number = $%d", len(args)+1))
		args = append(args, filter.Batch)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(COALESCE(student_id, '')) LIKE $%d OR LOWER(COALESCE(email, '')) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	where := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"full_name":  "full_name",
		"student_id": "student_id",
		"created_at": "created_at",
		"batch":      "batch_number",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM student_registrations WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d", studentColumns, where, column, order, size, offset)
	students := []models.StudentRegistration{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM student_registrations WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a registration by its row ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRegistration, error) {
	var student models.StudentRegistration
	query := fmt.Sprintf("SELECT %s FROM student_registrations WHERE id = $1", studentColumns)
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByStudentID fetches a registration by its human assigned student ID.
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error) {
	var student models.StudentRegistration
	query := fmt.Sprintf("SELECT %s FROM student_registrations WHERE student_id = $1 LIMIT 1", studentColumns)
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByStudentID checks whether a student ID is taken, optionally ignoring one row.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM student_registrations WHERE student_id = $1"
	args := []interface{}{studentID}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student id: %w", err)
	}
	return true, nil
}

// Roster returns trainees ordered by name.
func (r *StudentRepository) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	const query = `SELECT student_id, full_name, email FROM student_registrations
        WHERE is_trainee = true AND student_id IS NOT NULL ORDER BY full_name ASC`
	roster := []models.RosterEntry{}
	if err := r.db.SelectContext(ctx, &roster, query); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return roster, nil
}

// MissingStudentIDs returns the subset of ids that no registration carries.
func (r *StudentRepository) MissingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	const query = `SELECT student_id FROM student_registrations WHERE student_id = ANY($1)`
	if err := r.db.SelectContext(ctx, &found, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("check student ids: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Create inserts a new registration.
func (r *StudentRepository) Create(ctx context.Context, student *models.StudentRegistration) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO student_registrations (id, student_id, full_name, email, mobile_number, alternate_mobile_number, password_hash,
        date_of_birth, gender, blood_group, father_name, mother_name, current_address, permanent_address, city,
        emergency_contact_name, emergency_contact_number, college_name, education_qualification, degree_type,
        branch_specialization, university_board, year_of_graduation, cgpa, previous_education, course_enrolled,
        batch_number, enrollment_date, status, remarks, is_trainee, attendance_percentage, performance_rating,
        project_score, test_score, created_at, updated_at)
        VALUES (:id, :student_id, :full_name, :email, :mobile_number, :alternate_mobile_number, :password_hash,
        :date_of_birth, :gender, :blood_group, :father_name, :mother_name, :current_address, :permanent_address, :city,
        :emergency_contact_name, :emergency_contact_number, :college_name, :education_qualification, :degree_type,
        :branch_specialization, :university_board, :year_of_graduation, :cgpa, :previous_education, :course_enrolled,
        :batch_number, :enrollment_date, :status, :remarks, :is_trainee, :attendance_percentage, :performance_rating,
        :project_score, :test_score, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update writes the staff editable columns of a registration.
func (r *StudentRepository) Update(ctx context.Context, student *models.StudentRegistration) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_registrations SET student_id = :student_id, full_name = :full_name, email = :email,
        mobile_number = :mobile_number, alternate_mobile_number = :alternate_mobile_number, password_hash = :password_hash,
        date_of_birth = :date_of_birth, gender = :gender, blood_group = :blood_group, father_name = :father_name,
        mother_name = :mother_name, current_address = :current_address, permanent_address = :permanent_address, city = :city,
        emergency_contact_name = :emergency_contact_name, emergency_contact_number = :emergency_contact_number,
        college_name = :college_name, education_qualification = :education_qualification, degree_type = :degree_type,
        branch_specialization = :branch_specialization, university_board = :university_board,
        year_of_graduation = :year_of_graduation, cgpa = :cgpa, previous_education = :previous_education,
        course_enrolled = :course_enrolled, batch_number = :batch_number, enrollment_date = :enrollment_date,
        status = :status, remarks = :remarks, is_trainee = :is_trainee, attendance_percentage = :attendance_percentage,
        performance_rating = :performance_rating, project_score = :project_score, test_score = :test_score,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// UpdatePhoto stores an encoded profile photo for a student.
func (r *StudentRepository) UpdatePhoto(ctx context.Context, studentID, photo string) error {
	const query = `UPDATE student_registrations SET profile_photo_url = $2, updated_at = $3 WHERE student_id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, photo, time.Now().UTC()); err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash for a student.
func (r *StudentRepository) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	const query = `UPDATE student_registrations SET password_hash = $2, updated_at = $3 WHERE student_id = $1`
	res, err := r.db.ExecContext(ctx, query, studentID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
