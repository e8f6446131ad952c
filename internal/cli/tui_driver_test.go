package cli

import (
	"testing"

	"github.com/alexanderramin/carewise/internal/teatest"
)

// TestDriver wraps teatest.Driver with carewise-specific inspection methods.
// It provides access to appModel internals (tabs, overlays, shared state)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top overlay or the active tab.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the active view.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// OverlayLen returns the number of open forms.
func (d *TestDriver) OverlayLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the transient output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// Tab returns the tab with the given ID.
func (d *TestDriver) Tab(id ViewID) View {
	for _, v := range d.appModel().tabs {
		if v.ID() == id {
			return v
		}
	}
	return nil
}

// Pane returns the advice pane for role on whichever tab owns it.
func (d *TestDriver) Pane(id ViewID) *paneSet {
	switch v := d.Tab(id).(type) {
	case *intakeView:
		return &v.panes
	case *adviceTabView:
		return &v.panes
	}
	return nil
}
