package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type feeService interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeRecord, error)
	Create(ctx context.Context, actor models.Identity, req service.FeeRequest) (*models.FeeRecord, error)
	Update(ctx context.Context, actor models.Identity, id string, req service.FeeRequest) (*models.FeeRecord, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
	Statement(ctx context.Context, identity models.Identity) (*models.FeeStatement, error)
	Export(ctx context.Context, filter models.FeeFilter, format service.ExportFormat) (*service.ExportFile, error)
}

// FeeHandler exposes fee records.
type FeeHandler struct {
	fees feeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees feeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

func feeFilter(c *gin.Context) models.FeeFilter {
	return models.FeeFilter{
		StudentID: service.NormalizeStudentID(c.Query("student_id")),
		Status:    models.PaymentStatus(c.Query("status")),
		Search:    strings.TrimSpace(c.Query("search")),
	}
}

// List godoc
// @Summary List fee records
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, paid, overdue or partial"
// @Param search query string false "Student ID or name"
// @Param student_id query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	fees, err := h.fees.List(c.Request.Context(), feeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees, nil)
}

// Create godoc
// @Summary Add a fee record
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.FeeRequest true "Fee"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req service.FeeRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// Update godoc
// @Summary Update a fee record
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param payload body service.FeeRequest true "Fee"
// @Success 200 {object} response.Envelope
// @Router /admin/fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	var req service.FeeRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee, nil)
}

// Delete godoc
// @Summary Delete a fee record
// @Tags Fees
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Success 204
// @Router /admin/fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	if err := h.fees.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the filtered fee list
// @Tags Fees
// @Security BearerAuth
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "Payment status"
// @Param search query string false "Student ID or name"
// @Success 200 {file} binary
// @Router /admin/fees/export [get]
func (h *FeeHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ExportCSV))))
	file, err := h.fees.Export(c.Request.Context(), feeFilter(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Statement godoc
// @Summary The signed-in student's fees and totals
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/fees [get]
func (h *FeeHandler) Statement(c *gin.Context) {
	statement, err := h.fees.Statement(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statement, nil)
}
