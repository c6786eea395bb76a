package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type noteRepository interface {
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	CreateMany(ctx context.Context, notes []models.Note) error
}

// TagList accepts either a JSON array of tags or one comma separated string.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*t = cleanTags(strings.Split(text, ","))
	return nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SendNoteRequest fans one note out to the selected students.
type SendNoteRequest struct {
	Audience
	Title   string      `json:"title" validate:"required,notblank,max=200"`
	Content string      `json:"content" validate:"required,notblank"`
	Tags    TagList     `json:"tags"`
	Date    models.Date `json:"date"`
}

// NoteService sends and lists notes.
type NoteService struct {
	repo      noteRepository
	students  rosterSource
	audit     auditRecorder
	metrics   *MetricsService
	markdown  goldmark.Markdown
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs the note service.
func NewNoteService(repo noteRepository, students rosterSource, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	md := goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))
	return &NoteService{repo: repo, students: students, audit: audit, metrics: metrics, markdown: md, validator: validate, logger: logger}
}

// Send inserts one note per recipient in a single atomic write.
func (s *NoteService) Send(ctx context.Context, actor models.Identity, req SendNoteRequest) ([]models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid note payload")
	}
	ids, err := resolveAudience(ctx, s.students, req.Audience)
	if err != nil {
		return nil, err
	}
	date := dateOrToday(req.Date)
	tags := pq.StringArray(req.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}
	notes := fanOut(ids, func(id string) models.Note {
		return models.Note{StudentID: id, Title: strings.TrimSpace(req.Title), Content: req.Content, Tags: tags, Date: date}
	})
	if err := s.repo.CreateMany(ctx, notes); err != nil {
		return nil, writeError(err, "failed to send note")
	}
	s.metrics.RecordFanOut("notes", len(notes))
	auditFanOut(ctx, s.audit, actor, "notes", ids)
	return notes, nil
}

// List returns notes for the admin view, optionally for one student.
func (s *NoteService) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	filter.StudentID = NormalizeStudentID(filter.StudentID)
	notes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list notes")
	}
	return notes, nil
}

// ForStudent returns the signed-in student's notes with rendered HTML.
func (s *NoteService) ForStudent(ctx context.Context, identity models.Identity) ([]models.Note, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	notes, err := s.repo.List(ctx, models.NoteFilter{StudentID: identity.StudentID, All: true})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load notes")
	}
	for i := range notes {
		notes[i].ContentHTML = s.render(notes[i].Content)
	}
	return notes, nil
}

// render converts markdown to HTML; raw HTML in the source is omitted.
func (s *NoteService) render(content string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		s.logger.Warn("failed to render note", zap.Error(err))
		return ""
	}
	return buf.String()
}
