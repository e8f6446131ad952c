package cli

import (
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// tabAction binds a key to one advice role on a tab.
type tabAction struct {
	binding key.Binding
	role    domain.Role
	prompt  string // question form title, question roles only
}

// adviceTabView is the patient or carer tab: a set of advice panes in a
// scrollable viewport.
type adviceTabView struct {
	state    *SharedState
	id       ViewID
	titleStr string
	actions  []tabAction
	panes    paneSet
	vp       viewport.Model
}

func newPatientTab(state *SharedState) *adviceTabView {
	return newAdviceTab(state, ViewPatient, "Patient", []tabAction{
		{
			binding: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "patient advice")),
			role:    domain.RolePatientAdvice,
		},
		{
			binding: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "ask a question")),
			role:    domain.RolePatientQuestion,
			prompt:  "What would you like to ask about your recovery?",
		},
	})
}

func newCarerTab(state *SharedState) *adviceTabView {
	return newAdviceTab(state, ViewCarer, "Carer", []tabAction{
		{
			binding: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "carer guidance")),
			role:    domain.RoleCarerAdvice,
		},
		{
			binding: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "ask a question")),
			role:    domain.RoleCarerQuestion,
			prompt:  "What do you need help with as a carer?",
		},
		{
			binding: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "specific advice")),
			role:    domain.RoleSpecificAdvice,
			prompt:  "Describe the situation you need specific advice on",
		},
	})
}

func newAdviceTab(state *SharedState, id ViewID, title string, actions []tabAction) *adviceTabView {
	panes := make([]*advicePane, 0, len(actions))
	for _, a := range actions {
		panes = append(panes, &advicePane{
			role: a.role,
			hint: "Press " + a.binding.Help().Key + " for " + a.binding.Help().Desc + ".",
		})
	}
	v := &adviceTabView{
		state:    state,
		id:       id,
		titleStr: title,
		actions:  actions,
		panes:    newPaneSet(panes...),
		vp:       viewport.New(state.Width, state.ContentHeight()),
	}
	v.vp.KeyMap = outputViewportKeyMap()
	v.refresh()
	return v
}

func (v *adviceTabView) refresh() {
	v.vp.SetContent(v.panes.render())
}

func (v *adviceTabView) Init() tea.Cmd { return nil }

func (v *adviceTabView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, changed := v.panes.update(v.state, msg); changed {
		v.refresh()
		return v, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		for _, a := range v.actions {
			if key.Matches(msg, a.binding) {
				return v, v.trigger(a)
			}
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *adviceTabView) trigger(a tabAction) tea.Cmd {
	if p := v.panes.pane(a.role); p != nil && p.loading {
		return nil
	}
	if !a.role.IsQuestion() {
		return startAdvice(a.role, "")
	}
	question := new(string)
	return startWizardCmd(v.state, a.binding.Help().Desc, wizardInputQuestion(a.prompt, "Type your question", question), func() tea.Cmd {
		return startAdvice(a.role, *question)
	})
}

func (v *adviceTabView) View() string {
	return v.vp.View()
}

func (v *adviceTabView) ID() ViewID    { return v.id }
func (v *adviceTabView) Title() string { return v.titleStr }
func (v *adviceTabView) ShortHelp() []key.Binding {
	bindings := make([]key.Binding, 0, len(v.actions))
	for _, a := range v.actions {
		bindings = append(bindings, a.binding)
	}
	return bindings
}
