package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
	"github.com/srisoftware/portal-api/pkg/export"
	"github.com/srisoftware/portal-api/pkg/sharelink"
)

const resumeShareKind = "resume"

type resumeRepository interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.Resume, error)
	Upsert(ctx context.Context, resume *models.Resume) error
}

type shareSigner interface {
	Sign(kind, subject string) (string, time.Time, error)
	Verify(kind, token string) (string, error)
}

// SaveResumeRequest replaces the student's resume.
type SaveResumeRequest struct {
	PersonalInfo models.PersonalInfo `json:"personal_info"`
	Skills       TagList             `json:"skills"`
}

// ResumeConfig sets where share links point.
type ResumeConfig struct {
	PublicBaseURL string
	APIPrefix     string
}

// ResumeService edits, renders and shares student resumes.
type ResumeService struct {
	repo      resumeRepository
	signer    shareSigner
	cfg       ResumeConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResumeService constructs the resume service.
func NewResumeService(repo resumeRepository, signer shareSigner, cfg ResumeConfig, validate *validator.Validate, logger *zap.Logger) *ResumeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeService{repo: repo, signer: signer, cfg: cfg, validator: validate, logger: logger}
}

// Get returns the signed-in student's resume, or an empty one when none is saved.
func (s *ResumeService) Get(ctx context.Context, identity models.Identity) (*models.Resume, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	return s.load(ctx, identity.StudentID)
}

func (s *ResumeService) load(ctx context.Context, studentID string) (*models.Resume, error) {
	resume, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Resume{StudentID: studentID, Skills: pq.StringArray{}}, nil
		}
		return nil, appErrors.Internal(err, "failed to load resume")
	}
	if resume.Skills == nil {
		resume.Skills = pq.StringArray{}
	}
	return resume, nil
}

// Save creates or replaces the signed-in student's resume.
func (s *ResumeService) Save(ctx context.Context, identity models.Identity, req SaveResumeRequest) (*models.Resume, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid resume payload")
	}
	info := req.PersonalInfo
	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	skills := pq.StringArray(req.Skills)
	if skills == nil {
		skills = pq.StringArray{}
	}
	resume := &models.Resume{StudentID: identity.StudentID, PersonalInfo: info, Skills: skills}
	if err := s.repo.Upsert(ctx, resume); err != nil {
		return nil, writeError(err, "failed to save resume")
	}
	return resume, nil
}

// PDF renders the signed-in student's resume.
func (s *ResumeService) PDF(ctx context.Context, identity models.Identity) (*ExportFile, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	return s.render(ctx, identity.StudentID, identity.Name)
}

// Share returns a signed link that downloads the resume PDF without a session.
func (s *ResumeService) Share(ctx context.Context, identity models.Identity) (*models.ResumeShare, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Sign(resumeShareKind, identity.StudentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create share link")
	}
	url := strings.TrimRight(s.cfg.PublicBaseURL, "/") + s.cfg.APIPrefix + "/public/resume/" + token
	return &models.ResumeShare{URL: url, ExpiresAt: expiresAt}, nil
}

// SharedPDF renders the resume a share token points to.
func (s *ResumeService) SharedPDF(ctx context.Context, token string) (*ExportFile, error) {
	studentID, err := s.signer.Verify(resumeShareKind, token)
	if err != nil {
		if errors.Is(err, sharelink.ErrExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "share link has expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "share link is not valid")
	}
	return s.render(ctx, studentID, "")
}

func (s *ResumeService) render(ctx context.Context, studentID, fallbackName string) (*ExportFile, error) {
	resume, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	body, err := export.DocumentPDF(resumeDocument(resume, fallbackName))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render resume")
	}
	return &ExportFile{
		Filename:    "resume-" + strings.ToLower(studentID) + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

func resumeDocument(resume *models.Resume, fallbackName string) export.Document {
	info := resume.PersonalInfo
	title := info.Name
	if title == "" {
		title = fallbackName
	}
	if title == "" {
		title = resume.StudentID
	}
	var contact []string
	for _, part := range []string{info.Email, info.Phone} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	doc := export.Document{Title: title, Subtitle: strings.Join(contact, " | ")}
	if info.Address != "" {
		doc.Sections = append(doc.Sections, export.Section{Heading: "Address", Lines: []string{info.Address}})
	}
	if info.Summary != "" {
		doc.Sections = append(doc.Sections, export.Section{Heading: "Summary", Lines: strings.Split(info.Summary, "\n")})
	}
	if len(resume.Skills) > 0 {
		doc.Sections = append(doc.Sections, export.Section{Heading: "Skills", Lines: []string{strings.Join(resume.Skills, ", ")}})
	}
	return doc
}
