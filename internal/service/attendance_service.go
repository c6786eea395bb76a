package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/pkg/database"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	CreateMany(ctx context.Context, records []models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id string) error
}

// AttendanceEntry is one row of the mark-attendance sheet. Entries without a
// status were left unmarked and are skipped.
type AttendanceEntry struct {
	StudentID string                  `json:"student_id" validate:"required,notblank"`
	Status    models.AttendanceStatus `json:"status" validate:"omitempty,attendance_status"`
	Remarks   *string                 `json:"remarks"`
}

// MarkAttendanceRequest records a sheet of marks for one date.
type MarkAttendanceRequest struct {
	Date    models.Date       `json:"date"`
	Entries []AttendanceEntry `json:"entries" validate:"dive"`
}

// MarkAllPresentRequest marks every trainee present on Date.
type MarkAllPresentRequest struct {
	Date models.Date `json:"date"`
}

// UpdateAttendanceRequest edits one mark.
type UpdateAttendanceRequest struct {
	Status  models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
	Remarks *string                 `json:"remarks"`
}

// AttendanceService coordinates attendance workflows.
type AttendanceService struct {
	repo      attendanceRepository
	students  rosterSource
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, students rosterSource, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, students: students, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// List returns marks for a date (today when unset), optionally for one student.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.Date == nil && filter.StudentID == "" {
		filter.Date = models.Today().Ptr()
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list attendance")
	}
	return records, nil
}

// MarkSelected inserts one mark per entry that carries a status, atomically.
func (s *AttendanceService) MarkSelected(ctx context.Context, actor models.Identity, req MarkAttendanceRequest) ([]models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid attendance payload")
	}
	date := dateOrToday(req.Date)

	marked := make(map[string]AttendanceEntry, len(req.Entries))
	var ids []string
	for _, entry := range req.Entries {
		if entry.Status == "" {
			continue
		}
		code := NormalizeStudentID(entry.StudentID)
		if _, dup := marked[code]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student "+code+" is marked twice")
		}
		marked[code] = entry
		ids = append(ids, code)
	}
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mark attendance for at least one student")
	}
	if err := ensureStudents(ctx, s.students, ids); err != nil {
		return nil, err
	}

	records := fanOut(ids, func(id string) models.AttendanceRecord {
		entry := marked[id]
		return models.AttendanceRecord{StudentID: id, Date: date, Status: entry.Status, Remarks: trimPtr(entry.Remarks)}
	})
	return s.insert(ctx, actor, records)
}

// MarkAllPresent inserts a present mark for every trainee on the roster.
func (s *AttendanceService) MarkAllPresent(ctx context.Context, actor models.Identity, req MarkAllPresentRequest) ([]models.AttendanceRecord, error) {
	ids, err := resolveAudience(ctx, s.students, Audience{AllTrainees: true})
	if err != nil {
		return nil, err
	}
	date := dateOrToday(req.Date)
	records := fanOut(ids, func(id string) models.AttendanceRecord {
		return models.AttendanceRecord{StudentID: id, Date: date, Status: models.AttendancePresent}
	})
	return s.insert(ctx, actor, records)
}

func (s *AttendanceService) insert(ctx context.Context, actor models.Identity, records []models.AttendanceRecord) ([]models.AttendanceRecord, error) {
	if err := s.repo.CreateMany(ctx, records); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "attendance already marked for this date")
		}
		return nil, writeError(err, "failed to mark attendance")
	}
	s.metrics.RecordFanOut("attendance", len(records))
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.StudentID
	}
	auditFanOut(ctx, s.audit, actor, "attendance", ids)
	return records, nil
}

// Update changes the status and remarks of one mark.
func (s *AttendanceService) Update(ctx context.Context, actor models.Identity, id string, req UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid attendance payload")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	record.Status = req.Status
	record.Remarks = trimPtr(req.Remarks)
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, writeError(err, "failed to update attendance")
	}
	recordChange(ctx, s.audit, actor, models.AuditActionUpdate, "attendance", id, nil)
	return record, nil
}

// Delete removes one mark; unknown ids succeed.
func (s *AttendanceService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete attendance")
	}
	recordChange(ctx, s.audit, actor, models.AuditActionDelete, "attendance", id, nil)
	return nil
}

// History returns the signed-in student's marks and their summary.
func (s *AttendanceService) History(ctx context.Context, identity models.Identity) (*models.AttendanceHistory, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	records, err := s.repo.List(ctx, models.AttendanceFilter{StudentID: identity.StudentID, All: true})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	return &models.AttendanceHistory{Records: records, Summary: models.SummarizeAttendance(records)}, nil
}

func dateOrToday(d models.Date) models.Date {
	if d.IsZero() {
		return models.Today()
	}
	return models.NewDate(d.Time)
}
