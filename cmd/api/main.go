package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/srisoftware/portal-api/api/swagger"
	"github.com/srisoftware/portal-api/internal/handler"
	"github.com/srisoftware/portal-api/internal/repository"
	"github.com/srisoftware/portal-api/internal/server"
	"github.com/srisoftware/portal-api/internal/service"
	"github.com/srisoftware/portal-api/pkg/cache"
	"github.com/srisoftware/portal-api/pkg/config"
	"github.com/srisoftware/portal-api/pkg/database"
	"github.com/srisoftware/portal-api/pkg/logger"
	"github.com/srisoftware/portal-api/pkg/sharelink"
)

// @title Training Portal API
// @version 1.0.0
// @description Public site, admin dashboard and student portal of the training institute.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer rdb.Close()

	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(rdb)
	tokenStore := repository.NewTokenStore(rdb)
	loginLimiter := repository.NewLoginLimiter(rdb)

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}
	validate := service.NewValidator()

	auditSvc := service.NewAuditService(auditRepo, service.AuditConfig{
		Workers:        cfg.Audit.Workers,
		BufferSize:     cfg.Audit.BufferSize,
		EnqueueTimeout: 100 * time.Millisecond,
	}, metrics, logr)
	auditSvc.Start(ctx)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Roster.CacheTTL, logr, cfg.Roster.CacheEnabled)

	authSvc := service.NewAuthService(studentRepo, adminRepo, tokenStore, auditSvc, metrics, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		BcryptCost:        cfg.Auth.BcryptCost,
	})
	studentSvc := service.NewStudentService(studentRepo, authSvc, cacheSvc, auditSvc, validate, logr, cfg.Uploads.PhotoMaxBytes)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentSvc, auditSvc, metrics, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, studentSvc, auditSvc, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, studentSvc, auditSvc, metrics, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, studentSvc, auditSvc, metrics, validate, logr)
	projectSvc := service.NewProjectService(projectRepo, studentSvc, auditSvc, metrics, validate, logr)
	resumeSvc := service.NewResumeService(resumeRepo, sharelink.NewSigner(cfg.Share.Secret, cfg.Share.TTL), service.ResumeConfig{
		PublicBaseURL: cfg.PublicBaseURL,
		APIPrefix:     cfg.APIPrefix,
	}, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students:   studentSvc,
		Attendance: attendanceSvc,
		Fees:       feeSvc,
		Notes:      noteSvc,
		Tasks:      taskSvc,
		Projects:   projectSvc,
		Resume:     resumeSvc,
		TaskCount:  taskRepo,
		Completed:  projectRepo,
		Logger:     logr,
	})

	verifyURL := cfg.PublicBaseURL + cfg.APIPrefix + "/public/verify"
	router := server.New(server.Options{
		APIPrefix:      cfg.APIPrefix,
		EnableDocs:     cfg.Env != config.EnvProduction,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Metrics:        metrics,
		Tokens:         authSvc,
		Audit:          auditSvc,
		LoginCounter:   loginLimiter,
		LoginLimit:     cfg.Auth.LoginRateLimit,
		LoginWindow:    cfg.Auth.LoginRateWindow,
	}, server.Handlers{
		Public:     handler.NewPublicHandler(studentSvc, resumeSvc, verifyURL, logr),
		Auth:       handler.NewAuthHandler(authSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Fees:       handler.NewFeeHandler(feeSvc),
		Notes:      handler.NewNoteHandler(noteSvc),
		Tasks:      handler.NewTaskHandler(taskSvc),
		Projects:   handler.NewProjectHandler(projectSvc),
		Resume:     handler.NewResumeHandler(resumeSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Metrics:    handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	auditSvc.Stop()
}
