package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
)

type memAuditRepo struct {
	mu   sync.Mutex
	logs []models.AuditLog
	err  error
}

func (m *memAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *memAuditRepo) snapshot() []models.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.logs...)
}

func TestAuditServiceWritesSynchronouslyWhenIdle(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, AuditConfig{Workers: 1, BufferSize: 4}, nil, zap.NewNop())

	svc.Record(context.Background(), models.AuditLog{ActorRole: "ADMIN", Action: models.AuditActionCreate, Resource: "student_tasks"})

	logs := repo.snapshot()
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.False(t, logs[0].CreatedAt.IsZero())
	assert.JSONEq(t, `{}`, string(logs[0].Details))
}

func TestAuditServiceQueuedWritesFlushOnStop(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, AuditConfig{Workers: 2, BufferSize: 16, EnqueueTimeout: time.Second}, NewMetricsService(), zap.NewNop())
	svc.Start(context.Background())

	for i := 0; i < 10; i++ {
		svc.Record(context.Background(), models.AuditLog{Action: models.AuditActionUpdate, Resource: "student_fees"})
	}
	svc.Stop()

	assert.Len(t, repo.snapshot(), 10)
}

func TestAuditServiceSwallowsWriteErrors(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("db down")}
	svc := NewAuditService(repo, AuditConfig{}, NewMetricsService(), zap.NewNop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), models.AuditLog{Action: models.AuditActionDelete, Resource: "student_attendance"})
	})

	var nilSvc *AuditService
	assert.NotPanics(t, func() { nilSvc.Record(context.Background(), models.AuditLog{}) })
}

func TestRecordChangeUsesAdminActor(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, AuditConfig{}, nil, nil)

	recordChange(context.Background(), svc, adminIdentity(), models.AuditActionUpdate, "student_fees", "fee-1", map[string]string{"status": "paid"})

	logs := repo.snapshot()
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, "admin-1", *logs[0].ActorID)
	assert.Equal(t, "ADMIN", logs[0].ActorRole)
	require.NotNil(t, logs[0].ResourceID)
	assert.Equal(t, "fee-1", *logs[0].ResourceID)

	var details map[string]string
	require.NoError(t, json.Unmarshal(logs[0].Details, &details))
	assert.Equal(t, "paid", details["status"])
}
