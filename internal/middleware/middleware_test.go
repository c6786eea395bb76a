package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	tokens []string
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error) {
	s.tokens = append(s.tokens, token)
	return s.claims, s.err
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		identity := Claims(c).Identity()
		c.JSON(http.StatusOK, gin.H{"role": identity.Role, "student_id": identity.StudentID})
	})
	router.GET("/probe", handlers...)
	return router
}

func doGet(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTRequiresBearerToken(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{Role: models.RoleStudent, StudentID: "STU001"}}
	router := newTestRouter(JWT(validator))

	rec := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "sign in required")

	rec = doGet(router, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header")
	assert.Empty(t, validator.tokens)

	rec = doGet(router, "Bearer tok-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"student_id":"STU001"`)
	assert.Equal(t, []string{"tok-1"}, validator.tokens)
}

func TestJWTPropagatesValidationError(t *testing.T) {
	validator := &stubValidator{err: appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")}
	router := newTestRouter(JWT(validator))

	rec := doGet(router, "Bearer revoked")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session has ended")
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	router := newTestRouter(OptionalJWT(&stubValidator{err: errors.New("bad token")}))
	rec := doGet(router, "Bearer junk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":""`)

	router = newTestRouter(OptionalJWT(&stubValidator{claims: &models.JWTClaims{Role: models.RoleAdmin, AdminID: "a1"}}))
	rec = doGet(router, "Bearer good")
	assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
}

func TestRequireRoles(t *testing.T) {
	inject := func(claims *models.JWTClaims) gin.HandlerFunc {
		return func(c *gin.Context) {
			if claims != nil {
				c.Set(ContextUserKey, claims)
			}
			c.Next()
		}
	}

	cases := []struct {
		name   string
		claims *models.JWTClaims
		status int
	}{
		{name: "anonymous", claims: nil, status: http.StatusUnauthorized},
		{name: "admin", claims: &models.JWTClaims{Role: models.RoleAdmin, AdminID: "a1"}, status: http.StatusForbidden},
		{name: "student", claims: &models.JWTClaims{Role: models.RoleStudent, StudentID: "STU001"}, status: http.StatusOK},
		{name: "student without id", claims: &models.JWTClaims{Role: models.RoleStudent}, status: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(inject(tc.claims), RequireRoles(models.RoleStudent))
			rec := doGet(router, "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

type stubCounter struct {
	hits int64
	err  error
}

func (s *stubCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.hits++
	return s.hits, 1500 * time.Millisecond, s.err
}

func TestLoginThrottle(t *testing.T) {
	counter := &stubCounter{}
	router := newTestRouter(LoginThrottle(counter, 2, time.Minute, nil, nil))

	assert.Equal(t, http.StatusOK, doGet(router, "").Code)
	assert.Equal(t, http.StatusOK, doGet(router, "").Code)

	rec := doGet(router, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
}

func TestLoginThrottleFailsOpen(t *testing.T) {
	router := newTestRouter(LoginThrottle(&stubCounter{err: errors.New("redis down")}, 1, time.Minute, nil, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doGet(router, "").Code)
	}
}

type memRecorder struct{ entries []models.AuditLog }

func (m *memRecorder) Record(ctx context.Context, entry models.AuditLog) {
	m.entries = append(m.entries, entry)
}

func TestAuditRecordsSuccessfulRequests(t *testing.T) {
	recorder := &memRecorder{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{Role: models.RoleAdmin, AdminID: "admin-1"})
		c.Next()
	})
	router.GET("/fees/export", Audit(recorder, models.AuditActionExport, "student_fees"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/fees/broken", Audit(recorder, models.AuditActionExport, "student_fees"), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fees/export?format=csv", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fees/broken", nil))

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, "EXPORT", entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, "admin-1", *entry.ActorID)
	assert.Contains(t, string(entry.Details), `"query":"format=csv"`)
}
