package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

type credentialStudentRepository interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error)
}

type credentialAdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

type tokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	BcryptCost        int
}

// RequestMeta carries client details recorded with auth events.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuthService checks credentials, issues session tokens and resolves the
// caller's current view.
type AuthService struct {
	students  credentialStudentRepository
	admins    credentialAdminRepository
	tokens    tokenStore
	audit     auditRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	dummyHash []byte
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students credentialStudentRepository, admins credentialAdminRepository, tokens tokenStore, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 12 * time.Hour
	}
	if config.BcryptCost < bcrypt.MinCost || config.BcryptCost > bcrypt.MaxCost {
		config.BcryptCost = bcrypt.DefaultCost
	}
	// Unknown accounts still pay for one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), config.BcryptCost)
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", zap.Error(err))
	}
	return &AuthService{
		students:  students,
		admins:    admins,
		tokens:    tokens,
		audit:     audit,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    config,
		dummyHash: dummy,
	}
}

// HashPassword bcrypt-hashes a plaintext password with the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	return HashPassword(password, s.config.BcryptCost)
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// StudentLogin authenticates a student by ID and password.
func (s *AuthService) StudentLogin(ctx context.Context, req models.StudentLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid login payload")
	}
	code := NormalizeStudentID(req.StudentID)
	meta := RequestMeta{IP: req.IP, UserAgent: req.UserAgent}

	student, err := s.students.FindByStudentID(ctx, code)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to fetch student")
	}

	var hash []byte
	if student != nil && student.PasswordHash != nil && *student.PasswordHash != "" {
		hash = []byte(*student.PasswordHash)
	}
	if !s.checkPassword(hash, req.Password) {
		s.loginFailed(ctx, models.RoleStudent, code, meta)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	identity := models.Identity{Role: models.RoleStudent, StudentID: student.Code(), Name: student.FullName}
	return s.openSession(ctx, identity, meta)
}

// AdminLogin authenticates a staff member by username and password.
func (s *AuthService) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid login payload")
	}
	meta := RequestMeta{IP: req.IP, UserAgent: req.UserAgent}

	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to fetch admin")
	}

	var hash []byte
	if admin != nil {
		hash = []byte(admin.PasswordHash)
	}
	if !s.checkPassword(hash, req.Password) {
		s.loginFailed(ctx, models.RoleAdmin, req.Username, meta)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	name := admin.FullName
	if name == "" {
		name = admin.Username
	}
	identity := models.Identity{Role: models.RoleAdmin, AdminID: admin.ID, Username: admin.Username, Name: name}
	return s.openSession(ctx, identity, meta)
}

// Logout revokes the session token described by claims until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims, meta RequestMeta) error {
	if claims == nil || claims.ExpiresAt == nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return appErrors.Internal(err, "failed to revoke session")
	}
	identity := claims.Identity()
	s.record(ctx, identity, models.AuditActionLogout, meta, nil)
	return nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	identity := claims.Identity()
	if !identity.IsAdmin() && !identity.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check session")
	}
	if revoked {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
	}
	return claims, nil
}

// CurrentSession reports the view the caller is in; nil claims mean no session.
func (s *AuthService) CurrentSession(claims *models.JWTClaims) models.SessionState {
	if claims == nil {
		return models.SessionState{View: models.ViewPublicSite}
	}
	identity := claims.Identity()
	return models.SessionState{View: identity.View(), Identity: &identity}
}

func (s *AuthService) checkPassword(hash []byte, password string) bool {
	if len(hash) == 0 {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func (s *AuthService) openSession(ctx context.Context, identity models.Identity, meta RequestMeta) (*models.Session, error) {
	token, expiresAt, err := s.generateAccessToken(identity)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create access token")
	}
	s.metrics.RecordLogin(string(identity.Role), "success")
	s.record(ctx, identity, models.AuditActionLogin, meta, nil)
	return &models.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		View:      identity.View(),
		Identity:  identity,
	}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, role models.UserRole, principal string, meta RequestMeta) {
	s.metrics.RecordLogin(string(role), "failure")
	s.logger.Info("login rejected", zap.String("role", string(role)), zap.String("principal", principal), zap.String("ip", meta.IP))
	s.record(ctx, models.Identity{Role: role}, models.AuditActionLoginFailed, meta, map[string]string{"principal": principal})
}

func (s *AuthService) record(ctx context.Context, identity models.Identity, action string, meta RequestMeta, details interface{}) {
	if s.audit == nil {
		return
	}
	var actor *string
	switch {
	case identity.AdminID != "":
		actor = &identity.AdminID
	case identity.StudentID != "":
		actor = &identity.StudentID
	}
	entry := models.AuditLog{
		ActorID:   actor,
		ActorRole: string(identity.Role),
		Action:    action,
		Resource:  "auth",
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}
	if details != nil {
		entry.Details = AuditDetails(details)
	}
	s.audit.Record(ctx, entry)
}

func (s *AuthService) generateAccessToken(identity models.Identity) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	subject := identity.StudentID
	if identity.IsAdmin() {
		subject = identity.AdminID
	}
	claims := &models.JWTClaims{
		Role:      identity.Role,
		StudentID: identity.StudentID,
		AdminID:   identity.AdminID,
		Username:  identity.Username,
		FullName:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
