// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is run to completion
// before the next key is sent, so a test reads like a keyboard session.
// Cmds that block on timers (cursor blink, spinner frames) are abandoned
// after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may produce.
const MaxDrainDepth = 100

// cmdTimeout separates Cmds that return a message right away (advice
// requests against fakes, form submissions) from timer-driven ones.
const cmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a tea.Model and drains the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg comes out of a Cmd. The runtime
	// normally consumes it before the model sees it.
	Quitting bool

	// Seen lists every message delivered to Update, in order.
	Seen []tea.Msg
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit afterwards to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains whatever it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// SendKey delivers a key event.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey types a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressTab()      { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyTab}) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyShiftTab}) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressCtrlR()    { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlR}) }
func (d *Driver) PressUp()       { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()     { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyDown}) }

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// CountSeen returns how many delivered messages satisfy match.
func (d *Driver) CountSeen(match func(tea.Msg) bool) int {
	n := 0
	for _, msg := range d.Seen {
		if match(msg) {
			n++
		}
	}
	return n
}

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	d.Seen = append(d.Seen, msg)
	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Seen = append(d.Seen, m)
		updated, _ := d.Model.Update(m)
		d.Model = updated
		return
	}
	if isBlink(msg) {
		return
	}
	d.deliver(msg, depth)
}

// runWithTimeout returns nil when cmd does not produce a message in time.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles text inputs,
// which re-arm a timer every time they are handled.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
