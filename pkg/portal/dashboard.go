package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/srisoftware/portal-api/internal/models"
)

// ErrUnknownTab is returned when a tab is not on the dashboard menu.
var ErrUnknownTab = errors.New("portal: unknown dashboard tab")

// Screen is what a dashboard tab shows. *ListView satisfies it.
type Screen interface {
	Load(ctx context.Context) error
	Close()
}

// ScreenFactory builds a fresh screen for the owning identity.
type ScreenFactory func(identity models.Identity) Screen

// Dashboard routes tab selection to screens. Each selection builds a new
// screen and closes the previous one so its late responses are dropped.
type Dashboard struct {
	mu        sync.Mutex
	identity  models.Identity
	tabs      []models.TabInfo
	factories map[models.DashboardTab]ScreenFactory
	active    models.DashboardTab
	screen    Screen
}

// NewDashboard builds a dashboard over the tabs that have a factory.
func NewDashboard(identity models.Identity, menu []models.TabInfo, factories map[models.DashboardTab]ScreenFactory) *Dashboard {
	tabs := make([]models.TabInfo, 0, len(menu))
	for _, tab := range menu {
		if _, ok := factories[tab.Key]; ok {
			tabs = append(tabs, tab)
		}
	}
	return &Dashboard{identity: identity, tabs: tabs, factories: factories}
}

// Tabs returns the menu.
func (d *Dashboard) Tabs() []models.TabInfo {
	return append([]models.TabInfo(nil), d.tabs...)
}

// Identity returns the owner of the dashboard.
func (d *Dashboard) Identity() models.Identity { return d.identity }

// Active returns the selected tab and its screen.
func (d *Dashboard) Active() (models.DashboardTab, Screen) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active, d.screen
}

// Select opens tab with a freshly built screen and loads it.
func (d *Dashboard) Select(ctx context.Context, tab models.DashboardTab) (Screen, error) {
	d.mu.Lock()
	factory, ok := d.lookup(tab)
	if !ok {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, tab)
	}
	if d.screen != nil {
		d.screen.Close()
	}
	screen := factory(d.identity)
	d.active = tab
	d.screen = screen
	d.mu.Unlock()

	if err := screen.Load(ctx); err != nil && !errors.Is(err, ErrClosed) {
		return screen, err
	}
	return screen, nil
}

func (d *Dashboard) lookup(tab models.DashboardTab) (ScreenFactory, bool) {
	for _, t := range d.tabs {
		if t.Key == tab {
			return d.factories[tab], true
		}
	}
	return nil, false
}

// Close closes the active screen.
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.screen != nil {
		d.screen.Close()
		d.screen = nil
	}
}
