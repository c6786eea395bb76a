package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type taskService interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Assign(ctx context.Context, actor models.Identity, req service.AssignTaskRequest) ([]models.Task, error)
	Reassign(ctx context.Context, actor models.Identity, id string, req service.ReassignTaskRequest) ([]models.Task, error)
	Grade(ctx context.Context, actor models.Identity, id string, req service.GradeTaskRequest) (*models.Task, error)
	ForStudent(ctx context.Context, identity models.Identity) ([]models.Task, error)
	Submit(ctx context.Context, identity models.Identity, id string, req service.SubmitTaskRequest) (*models.Task, error)
}

// TaskHandler exposes task assignment, submission and grading.
type TaskHandler struct {
	tasks taskService
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(tasks taskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List godoc
// @Summary List tasks
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, submitted or completed"
// @Param student_id query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), models.TaskFilter{
		StudentID: service.NormalizeStudentID(c.Query("student_id")),
		Status:    models.TaskStatus(c.Query("status")),
		Limit:     queryLimit(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, nil)
}

// Assign godoc
// @Summary Assign a task
// @Description Assign to the listed students or, with all_trainees, to every trainee
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.AssignTaskRequest true "Task"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/tasks [post]
func (h *TaskHandler) Assign(c *gin.Context) {
	var req service.AssignTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	tasks, err := h.tasks.Assign(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tasks)
}

// Reassign godoc
// @Summary Clone a task to other students
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param payload body service.ReassignTaskRequest true "Audience"
// @Success 201 {object} response.Envelope
// @Router /admin/tasks/{id}/reassign [post]
func (h *TaskHandler) Reassign(c *gin.Context) {
	var req service.ReassignTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	tasks, err := h.tasks.Reassign(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tasks)
}

// Grade godoc
// @Summary Grade a submitted task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param payload body service.GradeTaskRequest true "Grade"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/tasks/{id}/grade [post]
func (h *TaskHandler) Grade(c *gin.Context) {
	var req service.GradeTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.tasks.Grade(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Mine godoc
// @Summary The signed-in student's tasks
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/tasks [get]
func (h *TaskHandler) Mine(c *gin.Context) {
	tasks, err := h.tasks.ForStudent(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, nil)
}

// Submit godoc
// @Summary Submit a pending task
// @Tags Student Portal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param payload body service.SubmitTaskRequest true "Submission"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/tasks/{id}/submit [post]
func (h *TaskHandler) Submit(c *gin.Context) {
	var req service.SubmitTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.tasks.Submit(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}
