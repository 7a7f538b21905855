package panels

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestMetricsLoadFlow(t *testing.T) {
	m := testMetrics()
	m.SetFocused(true)

	tm := teatest.NewTestModel(t, wrapMetrics(&m), teatest.WithInitialTermSize(60, 20))
	waitForContains(t, tm, "SCALARS")
	waitForContains(t, tm, "Loading")

	tm.Send(MetricsLoadedMsg{Data: testScalarData("exp1/train")})
	waitForContains(t, tm, "loss")

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestHelpOverlayCloseFlow(t *testing.T) {
	h := NewHelpOverlay()

	tm := teatest.NewTestModel(t, wrapHelpOverlay(h), teatest.WithInitialTermSize(60, 24))
	waitForContains(t, tm, "Keybinds")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
