package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srisoftware/portal-api/internal/models"
)

type fakeAuth struct {
	studentErr error
	adminErr   error
	logoutErr  error
	logouts    int
}

func (f *fakeAuth) StudentLogin(ctx context.Context, studentID, password string) (*models.Session, error) {
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	return &models.Session{
		Token:    "token",
		View:     models.ViewStudentDashboard,
		Identity: models.Identity{Role: models.RoleStudent, StudentID: studentID, Name: "Asha Rao"},
	}, nil
}

func (f *fakeAuth) AdminLogin(ctx context.Context, username, password string) (*models.Session, error) {
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return &models.Session{
		Token:    "token",
		View:     models.ViewAdminDashboard,
		Identity: models.Identity{Role: models.RoleAdmin, AdminID: "adm-1", Username: username, Name: "Office"},
	}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestGateStudentLogin(t *testing.T) {
	gate := NewGate(&fakeAuth{})
	assert.Equal(t, models.ViewPublicSite, gate.View())

	require.NoError(t, gate.StudentLogin(context.Background(), "STU001", "secret"))

	assert.Equal(t, models.ViewStudentDashboard, gate.View())
	identity, ok := gate.Identity()
	require.True(t, ok)
	assert.Equal(t, "STU001", identity.StudentID)
}

func TestGateFailedLoginKeepsView(t *testing.T) {
	auth := &fakeAuth{studentErr: errors.New("invalid credentials")}
	gate := NewGate(auth)

	err := gate.StudentLogin(context.Background(), "STU001", "wrong")

	assert.EqualError(t, err, "invalid credentials")
	assert.Equal(t, models.ViewPublicSite, gate.View())
	_, ok := gate.Identity()
	assert.False(t, ok)
}

func TestGateBlankCredentials(t *testing.T) {
	gate := NewGate(&fakeAuth{})
	assert.ErrorIs(t, gate.StudentLogin(context.Background(), "", ""), ErrValidation)
}

func TestGateAdminFlow(t *testing.T) {
	auth := &fakeAuth{}
	gate := NewGate(auth)

	assert.ErrorIs(t, gate.AdminLogin(context.Background(), "office", "pw"), ErrInvalidTransition)
	require.NoError(t, gate.ShowAdminLogin())
	assert.Equal(t, models.ViewAdminLoginPrompt, gate.View())
	assert.ErrorIs(t, gate.StudentLogin(context.Background(), "STU001", "pw"), ErrInvalidTransition)

	require.NoError(t, gate.BackToSite())
	require.NoError(t, gate.ShowAdminLogin())
	require.NoError(t, gate.AdminLogin(context.Background(), "office", "pw"))
	assert.Equal(t, models.ViewAdminDashboard, gate.View())

	require.NoError(t, gate.Logout(context.Background()))
	assert.Equal(t, models.ViewPublicSite, gate.View())
	assert.Equal(t, 1, auth.logouts)
}

func TestGateLogoutClearsIdentityOnServerError(t *testing.T) {
	auth := &fakeAuth{logoutErr: errors.New("network down")}
	gate := NewGate(auth)
	require.NoError(t, gate.StudentLogin(context.Background(), "STU001", "secret"))

	assert.Error(t, gate.Logout(context.Background()))
	assert.Equal(t, models.ViewPublicSite, gate.View())
	_, ok := gate.Identity()
	assert.False(t, ok)
	assert.ErrorIs(t, gate.Logout(context.Background()), ErrInvalidTransition)
}
