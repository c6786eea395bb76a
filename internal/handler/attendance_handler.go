package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	MarkSelected(ctx context.Context, actor models.Identity, req service.MarkAttendanceRequest) ([]models.AttendanceRecord, error)
	MarkAllPresent(ctx context.Context, actor models.Identity, req service.MarkAllPresentRequest) ([]models.AttendanceRecord, error)
	Update(ctx context.Context, actor models.Identity, id string, req service.UpdateAttendanceRequest) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
	History(ctx context.Context, identity models.Identity) (*models.AttendanceHistory, error)
}

// AttendanceHandler exposes attendance marking and history.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary Attendance for a day
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param student_id query string false "Student ID"
// @Param status query string false "present, absent or late"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	filter := models.AttendanceFilter{
		StudentID: service.NormalizeStudentID(c.Query("student_id")),
		Date:      date,
		Status:    models.AttendanceStatus(c.Query("status")),
		Limit:     queryLimit(c),
	}
	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Mark godoc
// @Summary Mark attendance for selected students
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance sheet"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	records, err := h.attendance.MarkSelected(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, records)
}

// MarkAllPresent godoc
// @Summary Mark every trainee present
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.MarkAllPresentRequest true "Date"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/attendance/all-present [post]
func (h *AttendanceHandler) MarkAllPresent(c *gin.Context) {
	var req service.MarkAllPresentRequest
	if !bindJSON(c, &req) {
		return
	}
	records, err := h.attendance.MarkAllPresent(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, records)
}

// Update godoc
// @Summary Edit an attendance mark
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param payload body service.UpdateAttendanceRequest true "Status and remarks"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete an attendance mark
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Attendance ID"
// @Success 204
// @Router /admin/attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// History godoc
// @Summary The signed-in student's attendance
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/attendance [get]
func (h *AttendanceHandler) History(c *gin.Context) {
	history, err := h.attendance.History(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
