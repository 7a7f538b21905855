package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/tbtop/tbtop/internal/backend"
	"github.com/tbtop/tbtop/internal/config"
	"github.com/tbtop/tbtop/internal/tb"
	"github.com/tbtop/tbtop/internal/ui/clipboard"
	"github.com/tbtop/tbtop/internal/ui/layout"
	"github.com/tbtop/tbtop/internal/ui/panels"
	"github.com/tbtop/tbtop/internal/ui/styles"
)

const (
	panelRunList = 0
	panelMetrics = 1
	numPanels    = 2
)

const pollTimeout = 15 * time.Second

// pollIntervals are the values the i key cycles through. Zero disables
// automatic polling.
var pollIntervals = []time.Duration{
	0,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
}

type App struct {
	client  *tb.Client
	backend *backend.Backend
	sink    *Sink
	log     logrus.FieldLogger

	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	ready        bool

	header      panels.Header
	runList     panels.RunList
	metrics     panels.Metrics
	statusBar   panels.StatusBar
	helpOverlay *panels.HelpOverlay
	keys        KeyMap

	interval time.Duration
	timerGen int
}

// NewApp builds the root model. A nil logger discards all output.
func NewApp(cfg *config.Config, client *tb.Client, bk *backend.Backend, sink *Sink, logger logrus.FieldLogger) App {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	rl := panels.NewRunList()
	rl.SetFocused(true)

	h := panels.NewHeader(client.BaseURL())
	interval := time.Duration(cfg.Poll.IntervalSeconds) * time.Second
	h.SetInterval(interval)

	return App{
		client:    client,
		backend:   bk,
		sink:      sink,
		log:       logger,
		header:    h,
		runList:   rl,
		metrics:   panels.NewMetrics(),
		statusBar: panels.NewStatusBar(),
		keys:      DefaultKeyMap(),
		interval:  interval,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listenForNotifications(a.sink.Messages()),
		a.pollCmd(),
	}
	if cmd := a.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case RunsChangedMsg:
		runs := a.backend.Runs()
		a.statusBar.SetRunCount(len(runs))
		var cmd tea.Cmd
		a.runList, cmd = a.runList.Update(panels.RunsUpdatedMsg{Runs: runs})
		return a, tea.Batch(cmd, listenForNotifications(a.sink.Messages()))

	case ConnStatusMsg:
		a.statusBar.SetConnection(msg.Connected, msg.Err)
		cmds := []tea.Cmd{listenForNotifications(a.sink.Messages())}
		if !msg.Connected && msg.Err != "" {
			a.statusBar.SetFlashWithLevel("connection lost", panels.FlashError)
			cmds = append(cmds, a.clearFlashCmd())
		}
		return a, tea.Batch(cmds...)

	case pollTickMsg:
		if msg.Gen != a.timerGen {
			return a, nil
		}
		// Schedule the next tick right away; overlapping polls are
		// skipped by the backend.
		return a, tea.Batch(a.pollCmd(), a.scheduleTick())

	case pollDoneMsg:
		if a.backend.Connected() {
			if run := a.runList.SelectedRun(); run != "" {
				return a, fetchMetricsCmd(a.client, run, a.metrics.ActiveTab())
			}
		}
		return a, nil

	case panels.RunSelectedMsg:
		var cmd tea.Cmd
		a.metrics, cmd = a.metrics.Update(msg)
		return a, tea.Batch(cmd, fetchMetricsCmd(a.client, msg.Run, a.metrics.ActiveTab()))

	case panels.MetricsLoadedMsg:
		var cmd tea.Cmd
		a.metrics, cmd = a.metrics.Update(msg)
		return a, cmd

	case YankMsg:
		if err := clipboard.Write(msg.Text); err != nil {
			a.log.WithError(err).Warn("clipboard write failed")
			a.statusBar.SetFlashWithLevel("copy failed", panels.FlashError)
		} else {
			a.statusBar.SetFlashWithLevel("copied "+msg.Text, panels.FlashSuccess)
		}
		return a, a.clearFlashCmd()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	// While the filter input is capturing text, everything except ctrl+c
	// goes to the run list.
	if a.runList.FilterActive() && msg.String() != "ctrl+c" {
		return a.routeKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "tab":
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case "h", "left":
		if a.focusedPanel == panelMetrics {
			a.focusedPanel = panelRunList
			a.updateFocusState()
			return a, nil
		}
	case "l", "right":
		if a.focusedPanel == panelRunList {
			a.focusedPanel = panelMetrics
			a.updateFocusState()
			return a, nil
		}
	case "[":
		return a.switchTab(-1)
	case "]":
		return a.switchTab(1)
	case "r":
		a.statusBar.SetFlash("refreshing...")
		return a, tea.Batch(a.pollCmd(), a.clearFlashCmd())
	case "i":
		return a.cycleInterval()
	case "?":
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	}

	return a.routeKey(msg)
}

func (a App) switchTab(delta int) (tea.Model, tea.Cmd) {
	tab := (int(a.metrics.ActiveTab()) + delta + panels.TabCount) % panels.TabCount
	a.metrics.SetTab(panels.Tab(tab))
	a.header.SetTab(panels.Tab(tab))
	if run := a.runList.SelectedRun(); run != "" {
		return a, fetchMetricsCmd(a.client, run, panels.Tab(tab))
	}
	return a, nil
}

func (a App) cycleInterval() (tea.Model, tea.Cmd) {
	next := 0
	for i, d := range pollIntervals {
		if d == a.interval {
			next = (i + 1) % len(pollIntervals)
			break
		}
	}
	a.interval = pollIntervals[next]
	a.timerGen++ // cancels any pending tick
	a.header.SetInterval(a.interval)

	if a.interval == 0 {
		a.statusBar.SetFlash("auto-refresh off")
		return a, a.clearFlashCmd()
	}
	a.statusBar.SetFlash(fmt.Sprintf("auto-refresh every %s", a.interval))
	return a, tea.Batch(a.scheduleTick(), a.clearFlashCmd())
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focusedPanel {
	case panelRunList:
		var cmd tea.Cmd
		a.runList, cmd = a.runList.Update(msg)
		return a, cmd
	case panelMetrics:
		var cmd tea.Cmd
		a.metrics, cmd = a.metrics.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	headerView := a.header.View()
	mainRow := lipgloss.JoinHorizontal(lipgloss.Top, a.runList.View(), a.metrics.View())
	statusBarView := a.statusBar.View()

	fullLayout := lipgloss.JoinVertical(lipgloss.Left, headerView, mainRow, statusBarView)

	if a.helpOverlay != nil {
		modalView := a.helpOverlay.View()
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modalView,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

func (a App) pollCmd() tea.Cmd {
	bk := a.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
		defer cancel()
		bk.Poll(ctx)
		return pollDoneMsg{}
	}
}

func (a App) scheduleTick() tea.Cmd {
	if a.interval <= 0 {
		return nil
	}
	gen := a.timerGen
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return pollTickMsg{Gen: gen}
	})
}

func (a App) clearFlashCmd() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func (a *App) propagateSizes() {
	l := a.layout
	a.header.SetSize(l.HeaderWidth)
	a.runList.SetSize(l.RunListWidth, l.RunListHeight)
	a.metrics.SetSize(l.MetricsWidth, l.MetricsHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.runList.SetFocused(a.focusedPanel == panelRunList)
	a.metrics.SetFocused(a.focusedPanel == panelMetrics)
}
