package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func TestNewAppModel_HasThreeTabs(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)

	require.Len(t, m.tabs, 3)
	assert.Empty(t, m.viewStack)
	assert.Equal(t, ViewIntake, m.activeView().ID())
}

func TestAppModel_PushAndWizardComplete(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	form := newStubView(ViewForm, "Form", "form view")

	model, _ := m.Update(pushViewMsg{view: form})
	m = model.(appModel)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, form, m.activeView())
	assert.Contains(t, m.renderHeader(), "› Form")

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: func() tea.Msg { return cmdOutputMsg{output: "done"} }})
	m = model.(appModel)
	assert.Empty(t, m.viewStack)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(appModel)
	assert.Equal(t, "done", m.lastOutput)
	assert.True(t, m.outputActive)
}

func TestAppModel_BroadcastReachesEveryTab(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	a := newStubView(ViewIntake, "A", "a")
	b := newStubView(ViewPatient, "B", "b")
	m.tabs = []View{a, b}

	model, _ := m.Update(refreshViewMsg{})
	m = model.(appModel)

	require.Len(t, a.updateSeen, 1)
	require.Len(t, b.updateSeen, 1)
}

func TestAppModel_FormCapturesGlobalKeys(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	form := newStubView(ViewForm, "Form", "form view")
	m.viewStack = []View{form}

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = model.(appModel)
	assert.False(t, m.quitting)
	assert.Nil(t, cmd)
	require.Len(t, form.updateSeen, 1)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(appModel)
	assert.Equal(t, 0, m.activeTab)
}

func TestAppModel_OutputDismissedByNonScrollKey(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)

	model, _ := m.Update(cmdOutputMsg{output: "hello"})
	m = model.(appModel)
	assert.True(t, m.outputActive)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(appModel)
	assert.True(t, m.outputActive, "scroll keys keep output visible")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_ViewPadsToHeight(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 30, strings.Count(m.View(), "\n")+1)
}

func TestAppModel_StatusBarShowsTabHints(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)

	bar := m.renderStatusBar()
	assert.Contains(t, bar, "e: edit")
	assert.Contains(t, bar, "tab: next tab")
	assert.Contains(t, bar, "ctrl+r: clear")
}
