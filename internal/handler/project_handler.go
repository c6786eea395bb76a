package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type projectService interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	Assign(ctx context.Context, actor models.Identity, req service.AssignProjectRequest) ([]models.Project, error)
	Complete(ctx context.Context, actor models.Identity, id string) (*models.Project, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Project, error)
	Submit(ctx context.Context, identity models.Identity, id string, req service.SubmitProjectRequest) (*models.Project, error)
}

// ProjectHandler exposes project assignment and review.
type ProjectHandler struct {
	projects projectService
}

// NewProjectHandler constructs ProjectHandler.
func NewProjectHandler(projects projectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Param status query string false "in_progress, submitted or completed"
// @Param student_id query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), models.ProjectFilter{
		StudentID: service.NormalizeStudentID(c.Query("student_id")),
		Status:    models.ProjectStatus(c.Query("status")),
		Limit:     queryLimit(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects, nil)
}

// Assign godoc
// @Summary Assign a project
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.AssignProjectRequest true "Project"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/projects [post]
func (h *ProjectHandler) Assign(c *gin.Context) {
	var req service.AssignProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	projects, err := h.projects.Assign(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, projects)
}

// Complete godoc
// @Summary Accept a submitted project
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/projects/{id}/complete [post]
func (h *ProjectHandler) Complete(c *gin.Context) {
	project, err := h.projects.Complete(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}

// Mine godoc
// @Summary The signed-in student's projects
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/projects [get]
func (h *ProjectHandler) Mine(c *gin.Context) {
	projects, err := h.projects.ForStudent(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects, nil)
}

// Submit godoc
// @Summary Submit project links
// @Tags Student Portal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body service.SubmitProjectRequest true "Links"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/projects/{id}/submit [post]
func (h *ProjectHandler) Submit(c *gin.Context) {
	var req service.SubmitProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.projects.Submit(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}
