package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/srisoftware/portal-api/internal/models"
)

// ErrInvalidTransition is returned for a gate action not allowed in the
// current view.
var ErrInvalidTransition = errors.New("portal: action not allowed in current view")

// Authenticator signs users in and out; *client.Client satisfies it.
type Authenticator interface {
	StudentLogin(ctx context.Context, studentID, password string) (*models.Session, error)
	AdminLogin(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context) error
}

// Gate decides which top-level view is shown. It owns the identity: login
// creates it, logout destroys it.
type Gate struct {
	mu       sync.Mutex
	auth     Authenticator
	view     models.SessionView
	identity *models.Identity
}

// NewGate starts on the public site.
func NewGate(auth Authenticator) *Gate {
	return &Gate{auth: auth, view: models.ViewPublicSite}
}

// View returns the active top-level view.
func (g *Gate) View() models.SessionView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// Identity returns the signed in principal.
func (g *Gate) Identity() (models.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return models.Identity{}, false
	}
	return *g.identity, true
}

func (g *Gate) expect(views ...models.SessionView) error {
	for _, v := range views {
		if g.view == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, g.view)
}

// ShowAdminLogin moves from the public site to the admin login prompt.
func (g *Gate) ShowAdminLogin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.expect(models.ViewPublicSite); err != nil {
		return err
	}
	g.view = models.ViewAdminLoginPrompt
	return nil
}

// BackToSite leaves the admin login prompt.
func (g *Gate) BackToSite() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.expect(models.ViewAdminLoginPrompt); err != nil {
		return err
	}
	g.view = models.ViewPublicSite
	return nil
}

// StudentLogin signs a student in from the public site. A failed login leaves
// the view unchanged.
func (g *Gate) StudentLogin(ctx context.Context, studentID, password string) error {
	g.mu.Lock()
	err := g.expect(models.ViewPublicSite)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	if err := Required(map[string]string{"student_id": studentID, "password": password}); err != nil {
		return err
	}
	session, err := g.auth.StudentLogin(ctx, studentID, password)
	if err != nil {
		return err
	}
	return g.enter(session, models.ViewPublicSite)
}

// AdminLogin signs a staff member in from the admin login prompt.
func (g *Gate) AdminLogin(ctx context.Context, username, password string) error {
	g.mu.Lock()
	err := g.expect(models.ViewAdminLoginPrompt)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	if err := Required(map[string]string{"username": username, "password": password}); err != nil {
		return err
	}
	session, err := g.auth.AdminLogin(ctx, username, password)
	if err != nil {
		return err
	}
	return g.enter(session, models.ViewAdminLoginPrompt)
}

func (g *Gate) enter(session *models.Session, from models.SessionView) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.expect(from); err != nil {
		return err
	}
	identity := session.Identity
	g.identity = &identity
	g.view = identity.View()
	return nil
}

// Logout returns to the public site and drops the identity even when the
// server call fails; the server error is still returned.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	if err := g.expect(models.ViewAdminDashboard, models.ViewStudentDashboard); err != nil {
		g.mu.Unlock()
		return err
	}
	g.identity = nil
	g.view = models.ViewPublicSite
	g.mu.Unlock()

	return g.auth.Logout(ctx)
}
