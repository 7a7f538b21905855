package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapRunList creates a tea.Model adapter around a RunList for teatest use.
func wrapRunList(rl *RunList) tea.Model {
	return panelAdapter{
		view: func() string { return rl.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newRL, cmd := rl.Update(msg)
			*rl = newRL
			return cmd
		},
	}
}

// wrapMetrics creates a tea.Model adapter around a Metrics for teatest use.
func wrapMetrics(m *Metrics) tea.Model {
	return panelAdapter{
		view: func() string { return m.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newM, cmd := m.Update(msg)
			*m = newM
			return cmd
		},
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
