package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type intakeKeyMap struct {
	Edit   key.Binding
	Submit key.Binding
	Save   key.Binding
	Load   key.Binding
}

func newIntakeKeyMap() intakeKeyMap {
	return intakeKeyMap{
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
	}
}

// intakeView is the first tab: the patient record, save/load status, and
// the general advice produced on submit.
type intakeView struct {
	state *SharedState
	keys  intakeKeyMap
	panes paneSet
	vp    viewport.Model
}

func newIntakeView(state *SharedState) *intakeView {
	v := &intakeView{
		state: state,
		keys:  newIntakeKeyMap(),
		panes: newPaneSet(&advicePane{
			role: domain.RoleGeneralAdvice,
			hint: "Press enter to submit the record for AI advice.",
		}),
		vp: viewport.New(state.Width, state.ContentHeight()),
	}
	v.vp.KeyMap = outputViewportKeyMap()
	v.refresh()
	return v
}

func (v *intakeView) refresh() {
	var b strings.Builder
	if v.state.Record == nil {
		b.WriteString(formatter.RenderBox("Patient", formatter.Dim("No patient information yet. Press e to fill in the form or l to load a saved record.")))
	} else {
		b.WriteString(formatter.FormatRecord(v.state.Record, v.state.App.now()))
	}
	b.WriteString("\n")
	if v.state.Status != "" {
		b.WriteString("\n")
		b.WriteString(statusLine(v.state.Status))
		b.WriteString("\n")
	}
	if v.state.Collected != "" {
		b.WriteString("\n")
		b.WriteString(v.state.Collected)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.panes.render())
	v.vp.SetContent(b.String())
}

func statusLine(s string) string {
	switch {
	case strings.HasPrefix(s, "✅"):
		return formatter.Success(s)
	case strings.HasPrefix(s, "❌"):
		return formatter.Failure(s)
	default:
		return formatter.StyleYellow.Render(s)
	}
}

func (v *intakeView) Init() tea.Cmd { return nil }

func (v *intakeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case refreshViewMsg:
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Edit):
			return v, pushView(newIntakeFormView(v.state))
		case key.Matches(msg, v.keys.Submit):
			if p := v.panes.pane(domain.RoleGeneralAdvice); p != nil && p.loading {
				return v, nil
			}
			collectRecord(v.state)
			v.refresh()
			return v, startAdvice(domain.RoleGeneralAdvice, "")
		case key.Matches(msg, v.keys.Save):
			return v, pushView(newSaveFormView(v.state))
		case key.Matches(msg, v.keys.Load):
			return v, pushView(newLoadFormView(v.state))
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

// collectRecord stamps the intake record and stores the confirmation text.
// An incomplete or malformed record shows no confirmation; the advice pane
// reports the problem instead.
func collectRecord(state *SharedState) {
	rec := state.CurrentRecord()
	if err := rec.Validate(); err != nil {
		state.Collected = ""
		return
	}
	collected, err := state.App.Records.Collect(context.Background(), *rec)
	if err != nil {
		state.Collected = shellError(err)
		return
	}
	state.Record = collected.Record
	state.Collected = formatter.Success(collected.Summary) + "\n\n" + formatter.Dim(collected.JSON)
}

func (v *intakeView) View() string {
	return v.vp.View()
}

func (v *intakeView) ID() ViewID    { return ViewIntake }
func (v *intakeView) Title() string { return "Intake" }
func (v *intakeView) ShortHelp() []key.Binding {
	return []key.Binding{v.keys.Edit, v.keys.Submit, v.keys.Save, v.keys.Load}
}
