package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/intelligence"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// advicePane shows the latest result for one role.
type advicePane struct {
	role    domain.Role
	hint    string
	output  string
	loading bool
	// seq numbers requests. Clearing bumps it so an in-flight result is
	// discarded when it lands.
	seq int
}

// paneSet is the group of panes a tab owns plus the spinner shown while any
// of them waits on the provider.
type paneSet struct {
	panes   []*advicePane
	spinner spinner.Model
}

func newPaneSet(panes ...*advicePane) paneSet {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return paneSet{panes: panes, spinner: sp}
}

func (s *paneSet) pane(role domain.Role) *advicePane {
	for _, p := range s.panes {
		if p.role == role {
			return p
		}
	}
	return nil
}

func (s *paneSet) loading() bool {
	for _, p := range s.panes {
		if p.loading {
			return true
		}
	}
	return false
}

// update handles the broadcast advice messages. changed reports whether the
// rendered content needs refreshing.
func (s *paneSet) update(state *SharedState, msg tea.Msg) (cmd tea.Cmd, changed bool) {
	switch msg := msg.(type) {
	case adviceStartMsg:
		p := s.pane(msg.role)
		if p == nil || p.loading {
			return nil, false
		}
		p.seq++
		p.loading = true
		p.output = ""
		return tea.Batch(
			requestAdviceCmd(state.App, state.CurrentRecord(), msg.role, p.seq, msg.question),
			s.spinner.Tick,
		), true

	case adviceResultMsg:
		p := s.pane(msg.role)
		if p == nil || msg.seq != p.seq {
			return nil, false
		}
		p.loading = false
		p.output = renderAdviceResult(msg, state.Width)
		return nil, true

	case clearFormMsg:
		for _, p := range s.panes {
			p.seq++
			p.output = ""
			p.loading = false
		}
		return nil, true

	case spinner.TickMsg:
		if !s.loading() {
			return nil, false
		}
		var c tea.Cmd
		s.spinner, c = s.spinner.Update(msg)
		return c, true
	}
	return nil, false
}

func (s *paneSet) render() string {
	var b strings.Builder
	for i, p := range s.panes {
		if i > 0 {
			b.WriteString("\n")
		}
		switch {
		case p.loading:
			b.WriteString(formatter.Header(p.role.Label()))
			b.WriteString("\n")
			b.WriteString(s.spinner.View() + " " + formatter.Dim("Waiting for "+p.role.Label()+"..."))
			b.WriteString("\n")
		case p.output != "":
			b.WriteString(p.output)
		default:
			b.WriteString(formatter.Header(p.role.Label()))
			b.WriteString("\n")
			b.WriteString(formatter.Dim(p.hint))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// requestAdviceCmd runs one advice request off the UI loop.
func requestAdviceCmd(app *App, rec *domain.PatientRecord, role domain.Role, seq int, question string) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Advice.RequestAdvice(context.Background(), intelligence.AdviceRequest{
			Role:     role,
			Record:   rec,
			Question: question,
		})
		return adviceResultMsg{role: role, seq: seq, question: question, result: res, err: err}
	}
}

func renderAdviceResult(msg adviceResultMsg, width int) string {
	w := width - 2
	if w < 40 {
		w = 80
	}
	if msg.err != nil {
		return formatter.Header(msg.role.Label()) + "\n" +
			formatter.FormatAdviceError(intelligence.UserMessage(msg.role, msg.err)) + "\n"
	}
	return formatter.FormatAdvice(formatter.AdviceView{
		Role:      msg.role,
		Question:  strings.TrimSpace(msg.question),
		Text:      msg.result.Text,
		Model:     msg.result.Model,
		LatencyMs: msg.result.LatencyMs,
		Timeline:  msg.result.Timeline,
	}, w)
}
