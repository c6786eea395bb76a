package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/pkg/cache"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentRegistration, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error)
	ExistsByStudentID(ctx context.Context, studentID string, excludeID string) (bool, error)
	Roster(ctx context.Context) ([]models.RosterEntry, error)
	MissingStudentIDs(ctx context.Context, ids []string) ([]string, error)
	Create(ctx context.Context, student *models.StudentRegistration) error
	Update(ctx context.Context, student *models.StudentRegistration) error
	UpdatePhoto(ctx context.Context, studentID, photo string) error
	UpdatePassword(ctx context.Context, studentID, passwordHash string) error
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
}

var rosterCacheKey = cache.Key("roster", "trainees")

// RegisterLeadRequest is the public registration form.
type RegisterLeadRequest struct {
	FullName               string  `json:"full_name" validate:"required,notblank,max=200"`
	CollegeName            string  `json:"college_name" validate:"required,notblank"`
	EducationQualification string  `json:"education_qualification" validate:"required,notblank"`
	MobileNumber           string  `json:"mobile_number" validate:"required,notblank,min=7,max=20"`
	CGPA                   float64 `json:"cgpa" validate:"gte=0,lte=10"`
	City                   string  `json:"city" validate:"required,notblank"`
}

// StudentProfileInput holds the staff editable registration fields shared by create and update.
type StudentProfileInput struct {
	FullName               string               `json:"full_name" validate:"required,notblank,max=200"`
	Email                  *string              `json:"email" validate:"omitempty,email"`
	MobileNumber           *string              `json:"mobile_number"`
	AlternateMobileNumber  *string              `json:"alternate_mobile_number"`
	DateOfBirth            *models.Date         `json:"date_of_birth"`
	Gender                 *string              `json:"gender"`
	BloodGroup             *string              `json:"blood_group"`
	FatherName             *string              `json:"father_name"`
	MotherName             *string              `json:"mother_name"`
	CurrentAddress         *string              `json:"current_address"`
	PermanentAddress       *string              `json:"permanent_address"`
	City                   *string              `json:"city"`
	EmergencyContactName   *string              `json:"emergency_contact_name"`
	EmergencyContactNumber *string              `json:"emergency_contact_number"`
	CollegeName            *string              `json:"college_name"`
	EducationQualification *string              `json:"education_qualification"`
	DegreeType             *string              `json:"degree_type"`
	BranchSpecialization   *string              `json:"branch_specialization"`
	UniversityBoard        *string              `json:"university_board"`
	YearOfGraduation       *int                 `json:"year_of_graduation" validate:"omitempty,gte=1950,lte=2100"`
	CGPA                   *float64             `json:"cgpa" validate:"omitempty,gte=0,lte=10"`
	PreviousEducation      *string              `json:"previous_education"`
	CourseEnrolled         *string              `json:"course_enrolled"`
	BatchNumber            *string              `json:"batch_number"`
	EnrollmentDate         *models.Date         `json:"enrollment_date"`
	Status                 models.StudentStatus `json:"status" validate:"omitempty,student_status"`
	Remarks                *string              `json:"remarks"`
	IsTrainee              *bool                `json:"is_trainee"`
	AttendancePercentage   *float64             `json:"attendance_percentage" validate:"omitempty,gte=0,lte=100"`
	PerformanceRating      *string              `json:"performance_rating"`
	ProjectScore           *float64             `json:"project_score" validate:"omitempty,gte=0,lte=100"`
	TestScore              *float64             `json:"test_score" validate:"omitempty,gte=0,lte=100"`
}

// CreateStudentRequest is the admin "Add Student" form.
type CreateStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,notblank,max=32"`
	Password  string `json:"password" validate:"required,min=6"`
	StudentProfileInput
}

// UpdateStudentRequest edits a registration; a blank password keeps the current one.
type UpdateStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,notblank,max=32"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	StudentProfileInput
}

// UpdatePhotoRequest carries an encoded profile photo.
type UpdatePhotoRequest struct {
	Photo string `json:"photo" validate:"required"`
}

// StudentService handles registration and student record use cases.
type StudentService struct {
	repo          studentRepository
	hasher        passwordHasher
	cache         *CacheService
	audit         auditRecorder
	validator     *validator.Validate
	logger        *zap.Logger
	photoMaxBytes int
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, hasher passwordHasher, cache *CacheService, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, photoMaxBytes int) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if photoMaxBytes <= 0 {
		photoMaxBytes = 2 * 1024 * 1024
	}
	return &StudentService{
		repo:          repo,
		hasher:        hasher,
		cache:         cache,
		audit:         audit,
		validator:     validate,
		logger:        logger,
		photoMaxBytes: photoMaxBytes,
	}
}

// RegisterLead stores a public registration as a lead without credentials.
func (s *StudentService) RegisterLead(ctx context.Context, req RegisterLeadRequest) (*models.StudentRegistration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid registration")
	}
	cgpa := req.CGPA
	student := &models.StudentRegistration{
		FullName:               strings.TrimSpace(req.FullName),
		CollegeName:            trimPtr(&req.CollegeName),
		EducationQualification: trimPtr(&req.EducationQualification),
		MobileNumber:           trimPtr(&req.MobileNumber),
		CGPA:                   &cgpa,
		City:                   trimPtr(&req.City),
		Status:                 models.StudentStatusLead,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "failed to submit registration")
	}
	return student, nil
}

// Verify looks up the public profile of a student for third-party verification.
func (s *StudentService) Verify(ctx context.Context, studentID string) (*models.PublicProfile, error) {
	code := NormalizeStudentID(studentID)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student ID is required")
	}
	student, err := s.repo.FindByStudentID(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student ID not found in our records")
		}
		return nil, appErrors.Internal(err, "failed to verify student")
	}
	profile := models.PublicProfileOf(student)
	return &profile, nil
}

// List returns registrations and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a registration by row ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentRegistration, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// GetByStudentID returns a registration by its student ID.
func (s *StudentService) GetByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error) {
	student, err := s.repo.FindByStudentID(ctx, NormalizeStudentID(studentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Create enrols a student with credentials.
func (s *StudentService) Create(ctx context.Context, actor models.Identity, req CreateStudentRequest) (*models.StudentRegistration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid student payload")
	}
	code := NormalizeStudentID(req.StudentID)
	exists, err := s.repo.ExistsByStudentID(ctx, code, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to validate student id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student id already used")
	}
	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	student := &models.StudentRegistration{StudentID: &code, PasswordHash: &hash, Status: models.StudentStatusActive, IsTrainee: true}
	applyProfile(student, req.StudentProfileInput)
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "failed to create student")
	}
	s.rosterChanged(ctx)
	s.record(ctx, actor, models.AuditActionCreate, student.ID)
	return student, nil
}

// Update edits a registration, rehashing the password when one is supplied.
func (s *StudentService) Update(ctx context.Context, actor models.Identity, id string, req UpdateStudentRequest) (*models.StudentRegistration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid student payload")
	}
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	code := NormalizeStudentID(req.StudentID)
	if code != student.Code() {
		exists, err := s.repo.ExistsByStudentID(ctx, code, id)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to validate student id")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student id already used")
		}
	}
	student.StudentID = &code
	applyProfile(student, req.StudentProfileInput)
	if req.Password != "" {
		hash, err := s.hasher.HashPassword(req.Password)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to hash password")
		}
		student.PasswordHash = &hash
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(err, "failed to update student")
	}
	s.rosterChanged(ctx)
	s.record(ctx, actor, models.AuditActionUpdate, student.ID)
	return student, nil
}

// SetPassword replaces a student's password.
func (s *StudentService) SetPassword(ctx context.Context, studentID, password string) error {
	if len(password) < 6 {
		return appErrors.Clone(appErrors.ErrValidation, "password must be at least 6 characters")
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return appErrors.Internal(err, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, NormalizeStudentID(studentID), hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Internal(err, "failed to update password")
	}
	return nil
}

// Roster returns trainees ordered by name, served from cache when possible.
func (s *StudentService) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	roster, err := cached(ctx, s.cache, rosterCacheKey, s.repo.Roster)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load roster")
	}
	return roster, nil
}

// RosterIDs returns the student IDs of the current roster.
func (s *StudentService) RosterIDs(ctx context.Context) ([]string, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(roster))
	for _, entry := range roster {
		ids = append(ids, entry.StudentID)
	}
	return ids, nil
}

// MissingStudentIDs exposes the existence check to other services.
func (s *StudentService) MissingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	return s.repo.MissingStudentIDs(ctx, ids)
}

// UpdatePhoto validates and stores a data URI photo for the signed-in student.
func (s *StudentService) UpdatePhoto(ctx context.Context, identity models.Identity, req UpdatePhotoRequest) (string, error) {
	if err := requireStudent(identity); err != nil {
		return "", err
	}
	if err := s.validator.Struct(req); err != nil {
		return "", invalid(err, "invalid photo payload")
	}
	photo, err := s.normalisePhoto(req.Photo)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePhoto(ctx, identity.StudentID, photo); err != nil {
		return "", appErrors.Internal(err, "failed to update photo")
	}
	return photo, nil
}

// normalisePhoto decodes a data:image/...;base64 URI, checks size and sniffed
// type, and re-encodes it with the detected media type.
func (s *StudentService) normalisePhoto(raw string) (string, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(raw), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", appErrors.Clone(appErrors.ErrValidation, "photo must be a base64 data URI")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > s.photoMaxBytes+3 {
		return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, "photo must be 2MB or smaller")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", appErrors.Validation(err, "photo is not valid base64")
	}
	if len(data) > s.photoMaxBytes {
		return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, "photo must be 2MB or smaller")
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", appErrors.Clone(appErrors.ErrValidation, "photo must be an image")
	}
	return "data:" + mime.String() + ";base64," + payload, nil
}

func (s *StudentService) rosterChanged(ctx context.Context) {
	s.cache.Invalidate(ctx, rosterCacheKey)
}

func (s *StudentService) record(ctx context.Context, actor models.Identity, action, resourceID string) {
	recordChange(ctx, s.audit, actor, action, "students", resourceID, nil)
}

func applyProfile(student *models.StudentRegistration, in StudentProfileInput) {
	student.FullName = strings.TrimSpace(in.FullName)
	student.Email = trimPtr(in.Email)
	student.MobileNumber = trimPtr(in.MobileNumber)
	student.AlternateMobileNumber = trimPtr(in.AlternateMobileNumber)
	student.DateOfBirth = in.DateOfBirth
	student.Gender = trimPtr(in.Gender)
	student.BloodGroup = trimPtr(in.BloodGroup)
	student.FatherName = trimPtr(in.FatherName)
	student.MotherName = trimPtr(in.MotherName)
	student.CurrentAddress = trimPtr(in.CurrentAddress)
	student.PermanentAddress = trimPtr(in.PermanentAddress)
	student.City = trimPtr(in.City)
	student.EmergencyContactName = trimPtr(in.EmergencyContactName)
	student.EmergencyContactNumber = trimPtr(in.EmergencyContactNumber)
	student.CollegeName = trimPtr(in.CollegeName)
	student.EducationQualification = trimPtr(in.EducationQualification)
	student.DegreeType = trimPtr(in.DegreeType)
	student.BranchSpecialization = trimPtr(in.BranchSpecialization)
	student.UniversityBoard = trimPtr(in.UniversityBoard)
	student.YearOfGraduation = in.YearOfGraduation
	student.CGPA = in.CGPA
	student.PreviousEducation = trimPtr(in.PreviousEducation)
	student.CourseEnrolled = trimPtr(in.CourseEnrolled)
	student.BatchNumber = trimPtr(in.BatchNumber)
	student.EnrollmentDate = in.EnrollmentDate
	if in.Status != "" {
		student.Status = in.Status
	}
	student.Remarks = trimPtr(in.Remarks)
	if in.IsTrainee != nil {
		student.IsTrainee = *in.IsTrainee
	}
	student.AttendancePercentage = in.AttendancePercentage
	student.PerformanceRating = trimPtr(in.PerformanceRating)
	student.ProjectScore = in.ProjectScore
	student.TestScore = in.TestScore
}
