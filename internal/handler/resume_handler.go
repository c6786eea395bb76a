package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type resumeService interface {
	Get(ctx context.Context, identity models.Identity) (*models.Resume, error)
	Save(ctx context.Context, identity models.Identity, req service.SaveResumeRequest) (*models.Resume, error)
	PDF(ctx context.Context, identity models.Identity) (*service.ExportFile, error)
	Share(ctx context.Context, identity models.Identity) (*models.ResumeShare, error)
}

// ResumeHandler exposes the student resume builder.
type ResumeHandler struct {
	resumes resumeService
}

// NewResumeHandler constructs ResumeHandler.
func NewResumeHandler(resumes resumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// Get godoc
// @Summary The signed-in student's resume
// @Description Returns an empty resume when none has been saved
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/resume [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, err := h.resumes.Get(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resume, nil)
}

// Save godoc
// @Summary Save the signed-in student's resume
// @Tags Student Portal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.SaveResumeRequest true "Resume"
// @Success 200 {object} response.Envelope
// @Router /student/resume [put]
func (h *ResumeHandler) Save(c *gin.Context) {
	var req service.SaveResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	resume, err := h.resumes.Save(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resume, nil)
}

// PDF godoc
// @Summary Download the signed-in student's resume
// @Tags Student Portal
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /student/resume/pdf [get]
func (h *ResumeHandler) PDF(c *gin.Context) {
	file, err := h.resumes.PDF(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Share godoc
// @Summary Create a time limited public link to the resume PDF
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /student/resume/share [post]
func (h *ResumeHandler) Share(c *gin.Context) {
	share, err := h.resumes.Share(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, share)
}
