package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/service"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
	"github.com/srisoftware/portal-api/pkg/response"
)

// AttemptCounter counts hits per key within a fixed window.
type AttemptCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// LoginThrottle limits login attempts per client IP. When the counter is
// unavailable requests are let through.
func LoginThrottle(counter AttemptCounter, limit int, window time.Duration, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}
		count, ttl, err := counter.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logger.Warn("login throttle unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count > int64(limit) {
			retry := int(math.Ceil(ttl.Seconds()))
			if retry < 1 {
				retry = 1
			}
			metrics.RecordLogin("unknown", "throttled")
			c.Header("Retry-After", strconv.Itoa(retry))
			response.Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, "too many login attempts, try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
