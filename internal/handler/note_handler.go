package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type noteService interface {
	Send(ctx context.Context, actor models.Identity, req service.SendNoteRequest) ([]models.Note, error)
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Note, error)
}

// NoteHandler exposes notes.
type NoteHandler struct {
	notes noteService
}

// NewNoteHandler constructs NoteHandler.
func NewNoteHandler(notes noteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// List godoc
// @Summary List sent notes
// @Tags Notes
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "Student ID"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Router /admin/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), models.NoteFilter{
		StudentID: service.NormalizeStudentID(c.Query("student_id")),
		Limit:     queryLimit(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}

// Send godoc
// @Summary Send a note to students
// @Tags Notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.SendNoteRequest true "Note"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/notes [post]
func (h *NoteHandler) Send(c *gin.Context) {
	var req service.SendNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	notes, err := h.notes.Send(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notes)
}

// Mine godoc
// @Summary The signed-in student's notes
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/notes [get]
func (h *NoteHandler) Mine(c *gin.Context) {
	notes, err := h.notes.ForStudent(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}
