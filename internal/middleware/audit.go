package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/service"
)

// AuditRecorder stores audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// Audit records an entry after each successful request. It covers reads that
// staff should be accountable for, such as exports; writes are audited by the
// services themselves.
func Audit(recorder AuditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		identity := Claims(c).Identity()
		entry := models.AuditLog{
			ActorRole: string(identity.Role),
			Action:    action,
			Resource:  resource,
			Details: service.AuditDetails(map[string]interface{}{
				"path":       c.FullPath(),
				"query":      c.Request.URL.RawQuery,
				"status":     c.Writer.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
			}),
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if identity.AdminID != "" {
			id := identity.AdminID
			entry.ActorID = &id
		}
		recorder.Record(c.Request.Context(), entry)
	}
}
