package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/pkg/jobs"
)

type auditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditConfig sizes the audit writer.
type AuditConfig struct {
	Workers    int
	BufferSize int
	// EnqueueTimeout bounds how long a request waits for buffer space.
	EnqueueTimeout time.Duration
}

// AuditService writes audit_logs off the request path. Until Start is called,
// and after Stop, entries are written synchronously.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue[models.AuditLog]
	metrics *MetricsService
	logger  *zap.Logger
	timeout time.Duration
}

// NewAuditService constructs the audit writer.
func NewAuditService(repo auditRepository, cfg AuditConfig, metrics *MetricsService, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	svc := &AuditService{repo: repo, metrics: metrics, logger: logger, timeout: cfg.EnqueueTimeout}
	svc.queue = jobs.New("audit", svc.write, jobs.Config{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: 2,
		Logger:     logger,
	})
	return svc
}

// Start launches the background writers.
func (s *AuditService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop flushes buffered entries.
func (s *AuditService) Stop() { s.queue.Stop() }

// Record stores entry. Failures are logged and counted, never returned.
func (s *AuditService) Record(ctx context.Context, entry models.AuditLog) {
	if s == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if len(entry.Details) == 0 {
		entry.Details = []byte("{}")
	}

	if !s.queue.Running() {
		if err := s.write(ctx, entry); err != nil {
			s.metrics.RecordAuditDropped()
			s.logger.Warn("failed to write audit log", zap.String("action", entry.Action), zap.Error(err))
		}
		return
	}

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.queue.Enqueue(enqueueCtx, entry); err != nil {
		s.metrics.RecordAuditDropped()
		s.logger.Warn("failed to queue audit log", zap.String("action", entry.Action), zap.Error(err))
	}
}

func (s *AuditService) write(ctx context.Context, entry models.AuditLog) error {
	return s.repo.Create(ctx, &entry)
}

// AuditDetails marshals v for AuditLog.Details, falling back to an empty object.
func AuditDetails(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return raw
}

// recordChange audits an admin write against resource.
func recordChange(ctx context.Context, audit auditRecorder, actor models.Identity, action, resource, resourceID string, details interface{}) {
	if audit == nil {
		return
	}
	entry := models.AuditLog{
		ActorID:   adminActor(actor),
		ActorRole: string(actor.Role),
		Action:    action,
		Resource:  resource,
	}
	if resourceID != "" {
		id := resourceID
		entry.ResourceID = &id
	}
	if details != nil {
		entry.Details = AuditDetails(details)
	}
	audit.Record(ctx, entry)
}

func adminActor(actor models.Identity) *string {
	if actor.AdminID == "" {
		return nil
	}
	id := actor.AdminID
	return &id
}
