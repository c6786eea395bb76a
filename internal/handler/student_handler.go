package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
	"github.com/srisoftware/portal-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.StudentRegistration, error)
	Create(ctx context.Context, actor models.Identity, req service.CreateStudentRequest) (*models.StudentRegistration, error)
	Update(ctx context.Context, actor models.Identity, id string, req service.UpdateStudentRequest) (*models.StudentRegistration, error)
	Roster(ctx context.Context) ([]models.RosterEntry, error)
	UpdatePhoto(ctx context.Context, identity models.Identity, req service.UpdatePhotoRequest) (string, error)
}

// StudentHandler exposes registration management to staff and the photo
// upload to students.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List registrations
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, student ID or email"
// @Param trainee query bool false "Only trainees"
// @Param status query string false "Registration status"
// @Param course query string false "Course enrolled"
// @Param batch query string false "Batch number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "full_name, student_id, created_at or batch"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    models.StudentStatus(c.Query("status")),
		Course:    c.Query("course"),
		Batch:     c.Query("batch"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if raw := c.Query("trainee"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "trainee must be true or false"))
			return
		}
		filter.IsTrainee = &v
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get a registration
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Param id path string true "Row ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Add a student
// @Tags Students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Row ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /admin/students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Roster godoc
// @Summary Trainee roster
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/roster [get]
func (h *StudentHandler) Roster(c *gin.Context) {
	roster, err := h.students.Roster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// UpdatePhoto godoc
// @Summary Replace the signed-in student's profile photo
// @Tags Student Portal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.UpdatePhotoRequest true "Data URI"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /student/photo [put]
func (h *StudentHandler) UpdatePhoto(c *gin.Context) {
	var req service.UpdatePhotoRequest
	if !bindJSON(c, &req) {
		return
	}
	photo, err := h.students.UpdatePhoto(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"profile_photo_url": photo}, nil)
}
