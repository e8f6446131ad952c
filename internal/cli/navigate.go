package cli

import (
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/intelligence"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes an overlay view (a form) above the active tab.
type pushViewMsg struct {
	view View
}

// cmdOutputMsg carries text output to be displayed transiently in the
// content area.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// Broadcast messages. The appModel delivers these to every tab so a pane
// keeps its state while another tab is shown.

// refreshViewMsg asks tabs to re-read SharedState after a form changed it.
type refreshViewMsg struct{}

// clearFormMsg resets the intake record, the status line, and every advice
// pane.
type clearFormMsg struct{}

// adviceStartMsg asks the tab owning role to start a request.
type adviceStartMsg struct {
	role     domain.Role
	question string
}

// adviceResultMsg carries a finished request back to its pane.
type adviceResultMsg struct {
	role     domain.Role
	seq      int // request generation; stale results are dropped
	question string
	result   *intelligence.AdviceResult
	err      error
}

// pushView returns a tea.Cmd that pushes a view onto the overlay stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func startAdvice(role domain.Role, question string) tea.Cmd {
	return func() tea.Msg { return adviceStartMsg{role: role, question: question} }
}
