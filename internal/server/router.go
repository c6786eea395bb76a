// Package server holds the HTTP route table.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/handler"
	"github.com/srisoftware/portal-api/internal/middleware"
	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/logger"
	corsmiddleware "github.com/srisoftware/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/srisoftware/portal-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Public     *handler.PublicHandler
	Auth       *handler.AuthHandler
	Students   *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	Fees       *handler.FeeHandler
	Notes      *handler.NoteHandler
	Tasks      *handler.TaskHandler
	Projects   *handler.ProjectHandler
	Resume     *handler.ResumeHandler
	Dashboard  *handler.DashboardHandler
	Metrics    *handler.MetricsHandler
}

// Options carries the cross-cutting dependencies of the router.
type Options struct {
	APIPrefix      string
	EnableDocs     bool
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Tokens         middleware.TokenValidator
	Audit          middleware.AuditRecorder
	LoginCounter   middleware.AttemptCounter
	LoginLimit     int
	LoginWindow    time.Duration
}

// New builds the gin engine. Admin routes require an ADMIN token and student
// routes a STUDENT token; a student only ever reaches its own records because
// handlers take the identity from the token.
func New(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)

	public := api.Group("/public")
	public.POST("/register", h.Public.Register)
	public.GET("/verify/:studentId", h.Public.Verify)
	public.GET("/verify/:studentId/qr", h.Public.VerificationQR)
	public.GET("/resume/:token", h.Public.SharedResume)

	throttle := middleware.LoginThrottle(opts.LoginCounter, opts.LoginLimit, opts.LoginWindow, opts.Metrics, log)
	auth := api.Group("/auth")
	auth.POST("/student/login", throttle, h.Auth.StudentLogin)
	auth.POST("/admin/login", throttle, h.Auth.AdminLogin)
	auth.POST("/logout", middleware.JWT(opts.Tokens), h.Auth.Logout)
	auth.GET("/session", middleware.OptionalJWT(opts.Tokens), h.Auth.Session)

	admin := api.Group("/admin", middleware.JWT(opts.Tokens), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard.Menu)
	admin.GET("/dashboard/:tab", h.Dashboard.Tab)
	admin.GET("/roster", h.Students.Roster)
	admin.GET("/students", h.Students.List)
	admin.POST("/students", h.Students.Create)
	admin.GET("/students/:id", h.Students.Get)
	admin.PUT("/students/:id", h.Students.Update)
	admin.GET("/overview/:studentId", h.Dashboard.Overview)

	admin.GET("/attendance", h.Attendance.List)
	admin.POST("/attendance", h.Attendance.Mark)
	admin.POST("/attendance/all-present", h.Attendance.MarkAllPresent)
	admin.PUT("/attendance/:id", h.Attendance.Update)
	admin.DELETE("/attendance/:id", h.Attendance.Delete)

	admin.GET("/fees", h.Fees.List)
	admin.POST("/fees", h.Fees.Create)
	admin.GET("/fees/export", middleware.Audit(opts.Audit, models.AuditActionExport, "student_fees"), h.Fees.Export)
	admin.PUT("/fees/:id", h.Fees.Update)
	admin.DELETE("/fees/:id", h.Fees.Delete)

	admin.GET("/notes", h.Notes.List)
	admin.POST("/notes", h.Notes.Send)

	admin.GET("/tasks", h.Tasks.List)
	admin.POST("/tasks", h.Tasks.Assign)
	admin.POST("/tasks/:id/reassign", h.Tasks.Reassign)
	admin.POST("/tasks/:id/grade", h.Tasks.Grade)

	admin.GET("/projects", h.Projects.List)
	admin.POST("/projects", h.Projects.Assign)
	admin.POST("/projects/:id/complete", h.Projects.Complete)

	student := api.Group("/student", middleware.JWT(opts.Tokens), middleware.RequireRoles(models.RoleStudent))
	student.GET("/dashboard", h.Dashboard.Menu)
	student.GET("/dashboard/:tab", h.Dashboard.Tab)
	student.GET("/home", h.Dashboard.Home)
	student.PUT("/photo", h.Students.UpdatePhoto)
	student.GET("/attendance", h.Attendance.History)
	student.GET("/fees", h.Fees.Statement)
	student.GET("/notes", h.Notes.Mine)
	student.GET("/tasks", h.Tasks.Mine)
	student.POST("/tasks/:id/submit", h.Tasks.Submit)
	student.GET("/projects", h.Projects.Mine)
	student.POST("/projects/:id/submit", h.Projects.Submit)
	student.GET("/resume", h.Resume.Get)
	student.PUT("/resume", h.Resume.Save)
	student.GET("/resume/pdf", h.Resume.PDF)
	student.POST("/resume/share", h.Resume.Share)

	return r
}
