package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StudentLoginRequest holds student portal credentials.
type StudentLoginRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AdminLoginRequest holds staff credentials.
type AdminLoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// SessionView names the top level screen a caller is in.
type SessionView string

const (
	ViewPublicSite       SessionView = "public_site"
	ViewAdminLoginPrompt SessionView = "admin_login_prompt"
	ViewAdminDashboard   SessionView = "admin_dashboard"
	ViewStudentDashboard SessionView = "student_dashboard"
)

// Identity is the authenticated principal carried through a session. Exactly
// one of StudentID and AdminID is set.
type Identity struct {
	Role      UserRole `json:"role"`
	StudentID string   `json:"student_id,omitempty"`
	AdminID   string   `json:"admin_id,omitempty"`
	Username  string   `json:"username,omitempty"`
	Name      string   `json:"name"`
}

// IsAdmin reports whether the identity belongs to staff.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsStudent reports whether the identity belongs to a student.
func (i Identity) IsStudent() bool { return i.Role == RoleStudent && i.StudentID != "" }

// View maps the identity to the dashboard it may open.
func (i Identity) View() SessionView {
	switch {
	case i.IsAdmin():
		return ViewAdminDashboard
	case i.IsStudent():
		return ViewStudentDashboard
	default:
		return ViewPublicSite
	}
}

// Session is returned by a successful login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	View      SessionView `json:"view"`
	Identity  Identity    `json:"identity"`
}

// SessionState describes the caller's current view without issuing a token.
type SessionState struct {
	View     SessionView `json:"view"`
	Identity *Identity   `json:"identity,omitempty"`
}

// JWTClaims represents the JWT payload for session tokens.
type JWTClaims struct {
	Role      UserRole `json:"role"`
	StudentID string   `json:"student_id,omitempty"`
	AdminID   string   `json:"admin_id,omitempty"`
	Username  string   `json:"username,omitempty"`
	FullName  string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Identity extracts the principal from the claims.
func (c *JWTClaims) Identity() Identity {
	if c == nil {
		return Identity{}
	}
	return Identity{
		Role:      c.Role,
		StudentID: c.StudentID,
		AdminID:   c.AdminID,
		Username:  c.Username,
		Name:      c.FullName,
	}
}
