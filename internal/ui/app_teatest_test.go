package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/tbtop/tbtop/internal/backend"
	"github.com/tbtop/tbtop/internal/config"
	"github.com/tbtop/tbtop/internal/tb"
)

const waitDuration = 3 * time.Second

// appAdapter wraps the App (value receiver model) into a model that
// suppresses Init() side effects (sink listener, poll, tick timer) so the
// teatest program doesn't block forever on channel reads.
type appAdapter struct {
	app App
}

func newTestAppAdapter(t testing.TB) *appAdapter {
	t.Helper()
	cfg := config.DefaultConfig()
	client := tb.NewClient("http://localhost:6006")
	sink := NewSink()
	bk := backend.New(&stubRunsClient{runs: []string{"exp1/train", "exp2/train"}}, sink, nil)
	return &appAdapter{app: NewApp(&cfg, client, bk, sink, nil)}
}

func (a *appAdapter) Init() tea.Cmd {
	// Skip the real Init() which blocks on the sink channel.
	return nil
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

// waitForContains waits until the output contains the given substring.
func waitForContains(t testing.TB, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(
		t,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func TestAppInitialRenderFlow(t *testing.T) {
	adapter := newTestAppAdapter(t)

	tm := teatest.NewTestModel(t, adapter, teatest.WithInitialTermSize(120, 40))

	// Send WindowSizeMsg to trigger ready state
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	waitForContains(t, tm, "Runs")
	waitForContains(t, tm, "SCALARS")

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppHelpModalFlow(t *testing.T) {
	adapter := newTestAppAdapter(t)

	tm := teatest.NewTestModel(t, adapter, teatest.WithInitialTermSize(120, 40))
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	waitForContains(t, tm, "Runs")

	// Open help with ?
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	waitForContains(t, tm, "Keybinds")

	if adapter.app.helpOverlay == nil {
		t.Error("expected helpOverlay to be open")
	}

	// Close with Esc — the overlay returns CloseModalMsg, which the
	// program loop pumps back through Update.
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(200 * time.Millisecond)

	if adapter.app.helpOverlay != nil {
		t.Error("expected helpOverlay to be closed after Esc")
	}

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppRunsPropagationFlow(t *testing.T) {
	adapter := newTestAppAdapter(t)

	tm := teatest.NewTestModel(t, adapter, teatest.WithInitialTermSize(120, 40))
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	waitForContains(t, tm, "Waiting for TensorBoard")

	// Simulate a completed poll: cache primed, notification delivered.
	adapter.app.backend.Poll(context.Background())
	tm.Send(RunsChangedMsg{})
	waitForContains(t, tm, "exp1/train")
	waitForContains(t, tm, "2 runs")

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppTabSwitchFlow(t *testing.T) {
	adapter := newTestAppAdapter(t)

	tm := teatest.NewTestModel(t, adapter, teatest.WithInitialTermSize(120, 40))
	tm.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	waitForContains(t, tm, "SCALARS")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	waitForContains(t, tm, "IMAGES")

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
