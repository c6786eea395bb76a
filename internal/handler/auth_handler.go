package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/response"
)

type authService interface {
	StudentLogin(ctx context.Context, req models.StudentLoginRequest) (*models.Session, error)
	AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.Session, error)
	Logout(ctx context.Context, claims *models.JWTClaims, meta service.RequestMeta) error
	CurrentSession(claims *models.JWTClaims) models.SessionState
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// StudentLogin godoc
// @Summary Student sign in
// @Description Authenticate a student by student ID and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.StudentLoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req models.StudentLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IP, req.UserAgent = requestMeta(c)

	session, err := h.service.StudentLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// AdminLogin godoc
// @Summary Staff sign in
// @Description Authenticate an administrator by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminLoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IP, req.UserAgent = requestMeta(c)

	session, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Logout godoc
// @Summary Sign out
// @Description Revoke the current access token
// @Tags Authentication
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ip, agent := requestMeta(c)
	if err := h.service.Logout(c.Request.Context(), claimsFromContext(c), service.RequestMeta{IP: ip, UserAgent: agent}); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Session godoc
// @Summary Current view
// @Description Report which screen the caller is in; public_site without a valid token
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.CurrentSession(claimsFromContext(c)), nil)
}
