package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type mockAdminRepo struct {
	admins map[string]models.AdminUser
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	if admin, ok := m.admins[username]; ok {
		return &admin, nil
	}
	return nil, sql.ErrNoRows
}

type memTokens struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (m *memTokens) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[jti] = ttl
	return nil
}

func (m *memTokens) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

var testAuthConfig = AuthConfig{
	AccessTokenSecret: "test-secret",
	AccessTokenExpiry: time.Hour,
	Issuer:            "portal-test",
	BcryptCost:        bcrypt.MinCost,
}

func newTestAuthService(t *testing.T) (*AuthService, *memTokens, *mockAudit) {
	t.Helper()
	studentHash, err := HashPassword("abc123", bcrypt.MinCost)
	require.NoError(t, err)
	adminHash, err := HashPassword("office-pass", bcrypt.MinCost)
	require.NoError(t, err)

	student := trainee("STU001", "Asha Rao")
	student.PasswordHash = &studentHash
	lead := models.StudentRegistration{ID: "row-lead", StudentID: strPtr("STU002"), FullName: "No Password", Status: models.StudentStatusLead}
	admins := &mockAdminRepo{admins: map[string]models.AdminUser{
		"office": {ID: "admin-1", Username: "office", PasswordHash: adminHash, FullName: "Front Office"},
	}}

	tokens := &memTokens{}
	audit := &mockAudit{}
	svc := NewAuthService(newMockStudentRepo(student, lead), admins, tokens, audit, nil, nil, zap.NewNop(), testAuthConfig)
	return svc, tokens, audit
}

func TestAuthServiceStudentLogin(t *testing.T) {
	svc, _, audit := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.StudentLogin(ctx, models.StudentLoginRequest{StudentID: "STU001", Password: "abc123"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.ViewStudentDashboard, session.View)
	assert.Equal(t, "Asha Rao", session.Identity.Name)
	assert.Equal(t, "STU001", session.Identity.StudentID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	session, err = svc.StudentLogin(ctx, models.StudentLoginRequest{StudentID: " stu001", Password: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "STU001", session.Identity.StudentID)

	assert.Equal(t, []string{"LOGIN auth", "LOGIN auth"}, audit.actions())
}

func TestAuthServiceStudentLoginFailuresLookAlike(t *testing.T) {
	svc, _, audit := newTestAuthService(t)
	ctx := context.Background()

	attempts := []models.StudentLoginRequest{
		{StudentID: "STU001", Password: "wrong"},
		{StudentID: "STU001", Password: "ABC123"},
		{StudentID: "STU999", Password: "abc123"},
		{StudentID: "STU002", Password: "anything"},
	}
	for _, attempt := range attempts {
		_, err := svc.StudentLogin(ctx, attempt)
		require.Error(t, err, attempt.StudentID)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
		assert.Equal(t, "invalid credentials", appErr.Message)
	}
	assert.Len(t, audit.actions(), len(attempts))
	assert.Equal(t, "LOGIN_FAILED auth", audit.actions()[0])
	assert.Equal(t, "invalid credentials", appErrors.ErrInvalidCredentials.Message)
}

func TestAuthServiceStudentLoginRequiresFields(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.StudentLogin(context.Background(), models.StudentLoginRequest{StudentID: "STU001"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestAuthServiceAdminLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.AdminLogin(ctx, models.AdminLoginRequest{Username: "office", Password: "office-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.ViewAdminDashboard, session.View)
	assert.Equal(t, "admin-1", session.Identity.AdminID)
	assert.Equal(t, "Front Office", session.Identity.Name)

	_, err = svc.AdminLogin(ctx, models.AdminLoginRequest{Username: "office", Password: "nope"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials.Code))
	_, err = svc.AdminLogin(ctx, models.AdminLoginRequest{Username: "ghost", Password: "office-pass"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidCredentials.Code))
}

func TestAuthServiceValidateTokenAndLogout(t *testing.T) {
	svc, tokens, audit := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.StudentLogin(ctx, models.StudentLoginRequest{StudentID: "STU001", Password: "abc123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "STU001", claims.StudentID)
	assert.Equal(t, "STU001", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	state := svc.CurrentSession(claims)
	assert.Equal(t, models.ViewStudentDashboard, state.View)
	require.NotNil(t, state.Identity)
	assert.Equal(t, "Asha Rao", state.Identity.Name)

	require.NoError(t, svc.Logout(ctx, claims, RequestMeta{IP: "10.0.0.1"}))
	ttl, ok := tokens.revoked[claims.ID]
	require.True(t, ok)
	assert.True(t, ttl > 0 && ttl <= time.Hour)
	assert.Contains(t, audit.actions(), "LOGOUT auth")

	_, err = svc.ValidateToken(ctx, session.Token)
	require.Error(t, err)
	assert.Equal(t, "session has ended", appErrors.FromError(err).Message)
}

func TestAuthServiceValidateTokenRejectsForeignTokens(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	claims := &models.JWTClaims{
		Role:     models.RoleAdmin,
		AdminID:  "admin-1",
		FullName: "Mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Issuer:    testAuthConfig.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, forged)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	claims.Issuer = "someone-else"
	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthConfig.AccessTokenSecret))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, wrongIssuer)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	claims.Issuer = testAuthConfig.Issuer
	claims.ExpiresAt = nil
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthConfig.AccessTokenSecret))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, noExpiry)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))
}

func TestAuthServiceCurrentSessionWithoutToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	state := svc.CurrentSession(nil)
	assert.Equal(t, models.ViewPublicSite, state.View)
	assert.Nil(t, state.Identity)
}
