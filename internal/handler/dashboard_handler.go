package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/pkg/response"
)

type dashboardService interface {
	Menu(identity models.Identity) (*models.DashboardMenu, error)
	Tab(ctx context.Context, identity models.Identity, tab models.DashboardTab) (*models.TabContent, error)
	Home(ctx context.Context, identity models.Identity) (*models.StudentHome, error)
	Overview(ctx context.Context, studentID string) (*models.StudentOverview, error)
}

// DashboardHandler exposes the role dashboards.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Menu godoc
// @Summary Dashboard tabs for the caller's role
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
// @Router /student/dashboard [get]
func (h *DashboardHandler) Menu(c *gin.Context) {
	menu, err := h.service.Menu(identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, menu, nil)
}

// Tab godoc
// @Summary Load one dashboard tab
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param tab path string true "Tab key"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/dashboard/{tab} [get]
// @Router /student/dashboard/{tab} [get]
func (h *DashboardHandler) Tab(c *gin.Context) {
	content, err := h.service.Tab(c.Request.Context(), identityFromContext(c), models.DashboardTab(c.Param("tab")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, content, nil)
}

// Home godoc
// @Summary Student landing summary
// @Tags Student Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/home [get]
func (h *DashboardHandler) Home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, home, nil)
}

// Overview godoc
// @Summary Student detail with recent activity
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/overview/{studentId} [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
