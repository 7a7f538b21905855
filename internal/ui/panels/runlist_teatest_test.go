package panels

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestRunListRendersRuns(t *testing.T) {
	rl := testRunList()
	rl.SetFocused(true)

	tm := teatest.NewTestModel(t, wrapRunList(&rl), teatest.WithInitialTermSize(40, 20))
	waitForContains(t, tm, "Runs")
	waitForContains(t, tm, "exp1/train")

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestRunListNavigationFlow(t *testing.T) {
	rl := testRunList()
	rl.SetFocused(true)

	tm := teatest.NewTestModel(t, wrapRunList(&rl), teatest.WithInitialTermSize(40, 20))
	waitForContains(t, tm, "Runs")

	// Navigate down twice then back up
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})

	// Give time for updates to process
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))

	if rl.selected != 1 {
		t.Errorf("expected selection 1 after j/j/k, got %d", rl.selected)
	}
}

func TestRunListFilterFlow(t *testing.T) {
	rl := testRunList()
	rl.SetFocused(true)

	tm := teatest.NewTestModel(t, wrapRunList(&rl), teatest.WithInitialTermSize(40, 20))
	waitForContains(t, tm, "Runs")

	// Activate filter
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	time.Sleep(50 * time.Millisecond)

	// Type "train"
	for _, c := range "train" {
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{c}})
	}
	time.Sleep(100 * time.Millisecond)

	if len(rl.filtered) != 2 {
		t.Errorf("expected 2 filtered runs for 'train', got %d", len(rl.filtered))
	}

	// Dismiss filter with Esc — should restore all runs
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(100 * time.Millisecond)

	if rl.filterActive {
		t.Error("expected filter deactivated after Esc")
	}
	if len(rl.filtered) != 4 {
		t.Errorf("expected 4 runs after Esc, got %d", len(rl.filtered))
	}

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestRunListScrollFlow(t *testing.T) {
	runs := make([]string, 20)
	for i := range runs {
		runs[i] = fmt.Sprintf("scroll%02d", i)
	}
	rl := NewRunList()
	rl.SetSize(40, 12)
	rl.SetFocused(true)
	rl, _ = rl.Update(RunsUpdatedMsg{Runs: runs})

	tm := teatest.NewTestModel(t, wrapRunList(&rl), teatest.WithInitialTermSize(40, 12))
	waitForContains(t, tm, "Runs")

	// Navigate down enough to force scrolling
	for i := 0; i < 15; i++ {
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	}
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))

	if rl.selected != 15 {
		t.Errorf("expected selection 15, got %d", rl.selected)
	}
	if rl.offset == 0 {
		t.Error("expected list to have scrolled")
	}
}
