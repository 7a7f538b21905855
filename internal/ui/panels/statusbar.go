package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbtop/tbtop/internal/ui/styles"
	"github.com/tbtop/tbtop/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	connected  bool
	connErr    string
	runCount   int
	hasRuns    bool
	lastPoll   time.Time
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
}

func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetConnection records the backend connection state for display.
func (s *StatusBar) SetConnection(connected bool, errText string) {
	s.connected = connected
	s.connErr = errText
	if connected {
		s.lastPoll = time.Now()
	}
}

// SetRunCount records the number of runs for display.
func (s *StatusBar) SetRunCount(n int) {
	s.runCount = n
	s.hasRuns = true
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	version := styles.TextSecondaryStyle.Render("tbtop " + Version)

	var conn string
	if s.connected {
		conn = styles.ConnectedStyle.Render("● connected")
	} else if s.connErr != "" {
		conn = styles.DisconnectedStyle.Render("✗ " + text.Truncate(s.connErr, s.width/2))
	} else {
		conn = styles.TextDimStyle.Render("○ connecting...")
	}

	left := " " + version + sep + conn

	if s.hasRuns {
		runs := styles.TextSecondaryStyle.Render(fmt.Sprintf("%d runs", s.runCount))
		if s.runCount == 1 {
			runs = styles.TextSecondaryStyle.Render("1 run")
		}
		left += sep + runs
	}

	if !s.lastPoll.IsZero() {
		left += sep + styles.TextDimStyle.Render("updated "+text.RelativeTime(s.lastPoll))
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusConnected
		case FlashError:
			icon, color = "✗", styles.StatusDisconnected
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusPolling
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}
