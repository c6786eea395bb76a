package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
	"github.com/srisoftware/portal-api/pkg/response"
)

const verificationQRSize = 256

type publicStudentService interface {
	RegisterLead(ctx context.Context, req service.RegisterLeadRequest) (*models.StudentRegistration, error)
	Verify(ctx context.Context, studentID string) (*models.PublicProfile, error)
}

type sharedResumeService interface {
	SharedPDF(ctx context.Context, token string) (*service.ExportFile, error)
}

// PublicHandler serves the unauthenticated site: lead form, HR verification
// and shared resumes.
type PublicHandler struct {
	students  publicStudentService
	resumes   sharedResumeService
	verifyURL string
	logger    *zap.Logger
}

// NewPublicHandler constructs a PublicHandler. verifyURL is the absolute URL of
// the verification endpoint without the trailing student id.
func NewPublicHandler(students publicStudentService, resumes sharedResumeService, verifyURL string, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{students: students, resumes: resumes, verifyURL: strings.TrimRight(verifyURL, "/"), logger: logger}
}

// Register godoc
// @Summary Submit the public registration form
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body service.RegisterLeadRequest true "Registration form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /public/register [post]
func (h *PublicHandler) Register(c *gin.Context) {
	var req service.RegisterLeadRequest
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.students.RegisterLead(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": lead.ID, "status": lead.Status})
}

// Verify godoc
// @Summary Verify a student for HR
// @Tags Public
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/verify/{studentId} [get]
func (h *PublicHandler) Verify(c *gin.Context) {
	profile, err := h.students.Verify(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// VerificationQR godoc
// @Summary QR code linking to a student's verification page
// @Tags Public
// @Produce png
// @Param studentId path string true "Student ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /public/verify/{studentId}/qr [get]
func (h *PublicHandler) VerificationQR(c *gin.Context) {
	profile, err := h.students.Verify(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	png, err := qrcode.Encode(h.verifyURL+"/"+profile.StudentID, qrcode.Medium, verificationQRSize)
	if err != nil {
		h.logger.Error("failed to encode verification qr", zap.String("student_id", profile.StudentID), zap.Error(err))
		response.Error(c, appErrors.Internal(err, "failed to generate QR code"))
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// SharedResume godoc
// @Summary Download a resume through a share link
// @Tags Public
// @Produce application/pdf
// @Param token path string true "Share token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /public/resume/{token} [get]
func (h *PublicHandler) SharedResume(c *gin.Context) {
	file, err := h.resumes.SharedPDF(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
