package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
	"github.com/srisoftware/portal-api/pkg/export"
)

type feeRepository interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error)
	FindByID(ctx context.Context, id string) (*models.FeeRecord, error)
	Create(ctx context.Context, fee *models.FeeRecord) error
	Update(ctx context.Context, fee *models.FeeRecord) error
	Delete(ctx context.Context, id string) error
}

// ExportFormat selects a file rendering.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// FeeRequest is the admin fee form used for create and update.
type FeeRequest struct {
	StudentID     string               `json:"student_id" validate:"required,notblank"`
	FeeType       string               `json:"fee_type" validate:"required,notblank,max=100"`
	Amount        float64              `json:"amount" validate:"gt=0"`
	PaidAmount    float64              `json:"paid_amount" validate:"gte=0"`
	DueDate       models.Date          `json:"due_date"`
	PaidDate      *models.Date         `json:"paid_date"`
	PaymentStatus models.PaymentStatus `json:"payment_status" validate:"required,fee_status"`
	PaymentMethod *string              `json:"payment_method"`
	TransactionID *string              `json:"transaction_id"`
	Remarks       *string              `json:"remarks"`
}

// FeeService manages fee records.
type FeeService struct {
	repo      feeRepository
	students  studentIDChecker
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeeService constructs the fee service.
func NewFeeService(repo feeRepository, students studentIDChecker, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{repo: repo, students: students, audit: audit, validator: validate, logger: logger, now: time.Now}
}

// List returns fee records matching filter, latest due date first.
func (s *FeeService) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown payment status")
	}
	fees, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list fees")
	}
	return fees, nil
}

// Create adds a fee record.
func (s *FeeService) Create(ctx context.Context, actor models.Identity, req FeeRequest) (*models.FeeRecord, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	code := NormalizeStudentID(req.StudentID)
	if err := ensureStudents(ctx, s.students, []string{code}); err != nil {
		return nil, err
	}
	fee := &models.FeeRecord{StudentID: code}
	s.apply(fee, req)
	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, writeError(err, "failed to create fee")
	}
	recordChange(ctx, s.audit, actor, models.AuditActionCreate, "fees", fee.ID, nil)
	return fee, nil
}

// Update rewrites a fee record.
func (s *FeeService) Update(ctx context.Context, actor models.Identity, id string, req FeeRequest) (*models.FeeRecord, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee record not found")
		}
		return nil, appErrors.Internal(err, "failed to load fee")
	}
	code := NormalizeStudentID(req.StudentID)
	if code != fee.StudentID {
		if err := ensureStudents(ctx, s.students, []string{code}); err != nil {
			return nil, err
		}
	}
	fee.StudentID = code
	s.apply(fee, req)
	if err := s.repo.Update(ctx, fee); err != nil {
		return nil, writeError(err, "failed to update fee")
	}
	recordChange(ctx, s.audit, actor, models.AuditActionUpdate, "fees", id, nil)
	return fee, nil
}

// Delete removes a fee record; unknown ids succeed.
func (s *FeeService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete fee")
	}
	recordChange(ctx, s.audit, actor, models.AuditActionDelete, "fees", id, nil)
	return nil
}

// Statement returns the signed-in student's fees with totals.
func (s *FeeService) Statement(ctx context.Context, identity models.Identity) (*models.FeeStatement, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	fees, err := s.repo.List(ctx, models.FeeFilter{StudentID: identity.StudentID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load fees")
	}
	return &models.FeeStatement{Records: fees, Totals: models.SumFees(fees)}, nil
}

// Export renders the filtered fee list as CSV or PDF.
func (s *FeeService) Export(ctx context.Context, filter models.FeeFilter, format ExportFormat) (*ExportFile, error) {
	fees, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	table := feeTable(fees)
	stamp := s.now().UTC().Format("20060102")

	switch format {
	case ExportCSV, "":
		body, err := export.CSV(table)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render fees")
		}
		return &ExportFile{Filename: "fees-" + stamp + ".csv", ContentType: "text/csv", Body: body}, nil
	case ExportPDF:
		totals := models.SumFees(fees)
		subtitle := fmt.Sprintf("Total %s  Paid %s  Pending %s", money(totals.TotalAmount), money(totals.PaidAmount), money(totals.Pending))
		body, err := export.TablePDF("Fee Report", subtitle, table)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render fees")
		}
		return &ExportFile{Filename: "fees-" + stamp + ".pdf", ContentType: "application/pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *FeeService) check(req FeeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return invalid(err, "invalid fee payload")
	}
	if req.DueDate.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid fee payload: due_date is required")
	}
	if req.PaidAmount > req.Amount {
		return appErrors.Clone(appErrors.ErrValidation, "paid amount cannot exceed amount")
	}
	return nil
}

// apply copies the form onto fee. A paid fee keeps its paid date, or takes
// the submitted one, or today; any other status clears it.
func (s *FeeService) apply(fee *models.FeeRecord, req FeeRequest) {
	fee.FeeType = req.FeeType
	fee.Amount = req.Amount
	fee.PaidAmount = req.PaidAmount
	fee.DueDate = models.NewDate(req.DueDate.Time)
	fee.PaymentMethod = trimPtr(req.PaymentMethod)
	fee.TransactionID = trimPtr(req.TransactionID)
	fee.Remarks = trimPtr(req.Remarks)

	if req.PaymentStatus != models.PaymentPaid {
		fee.PaidDate = nil
	} else if req.PaidDate != nil && !req.PaidDate.IsZero() {
		fee.PaidDate = models.NewDate(req.PaidDate.Time).Ptr()
	} else if fee.PaymentStatus != models.PaymentPaid || fee.PaidDate == nil {
		fee.PaidDate = models.NewDate(s.now()).Ptr()
	}
	fee.PaymentStatus = req.PaymentStatus
}

func feeTable(fees []models.FeeRecord) export.Table {
	table := export.Table{Columns: []string{"Student ID", "Name", "Fee Type", "Amount", "Paid", "Due Date", "Paid Date", "Status"}}
	for _, f := range fees {
		var paid string
		if f.PaidDate != nil {
			paid = f.PaidDate.String()
		}
		table.AddRow(f.StudentID, f.FullName, f.FeeType, money(f.Amount), money(f.PaidAmount), f.DueDate.String(), paid, string(f.PaymentStatus))
	}
	return table
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
