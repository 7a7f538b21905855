package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbtop/tbtop/internal/ui/border"
	"github.com/tbtop/tbtop/internal/ui/styles"
	"github.com/tbtop/tbtop/internal/ui/text"
)

// Column widths for metrics rows.
const (
	colTagW   = 32
	colStepW  = 8
	colValueW = 12
	colCountW = 7
	colAgeW   = 9
)

type Metrics struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool

	run     string
	tab     Tab
	data    MetricsData
	hasData bool
	loading bool
}

func NewMetrics() Metrics {
	return Metrics{viewport: viewport.New(0, 0)}
}

func (m Metrics) Update(msg tea.Msg) (Metrics, tea.Cmd) {
	switch msg := msg.(type) {
	case RunSelectedMsg:
		if msg.Run != m.run {
			m.run = msg.Run
			m.hasData = false
			m.loading = true
			m.viewport.GotoTop()
		}
		return m, nil
	case MetricsLoadedMsg:
		// Ignore results for a run or tab we have since moved away from.
		if msg.Data.Run != m.run || msg.Data.Tab != m.tab {
			return m, nil
		}
		m.data = msg.Data
		m.hasData = true
		m.loading = false
		m.viewport.SetContent(m.renderRows())
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case "k", "up":
		offset := m.viewport.YOffset - 1
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
	case "ctrl+d":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
	case "ctrl+u":
		offset := m.viewport.YOffset - m.viewport.Height/2
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
	case "G":
		m.viewport.GotoBottom()
	case "g":
		m.viewport.GotoTop()
	}
	return m, nil
}

// SetTab switches the active metrics category and drops stale content.
func (m *Metrics) SetTab(tab Tab) {
	if tab == m.tab {
		return
	}
	m.tab = tab
	m.hasData = false
	m.loading = m.run != ""
	m.viewport.GotoTop()
}

// ActiveTab returns the currently displayed metrics category.
func (m Metrics) ActiveTab() Tab {
	return m.tab
}

// Run returns the run whose metrics are displayed, "" if none.
func (m Metrics) Run() string {
	return m.run
}

func (m Metrics) View() string {
	var keybinds []border.Keybind
	if m.focused {
		keybinds = []border.Keybind{
			{Key: "j/k", Label: " scroll"},
			{Key: "tab", Label: " category"},
		}
	}

	info := text.TruncateLeft(m.run, m.width/2)
	content := m.renderContent()
	title := fmt.Sprintf("[2] %s", m.tab)
	return border.RenderPanelWithInfo(title, info, content, keybinds, m.width, m.height, m.focused)
}

func (m Metrics) renderContent() string {
	if m.run == "" {
		return styles.TextDimStyle.Render("No run selected.")
	}
	if m.loading && !m.hasData {
		return styles.TextDimStyle.Render("Loading " + strings.ToLower(m.tab.String()) + "...")
	}
	if m.data.Err != "" {
		return styles.WarningStyle.Render("⚠ " + m.data.Err)
	}
	if m.empty() {
		return styles.TextDimStyle.Render("No " + strings.ToLower(m.tab.String()) + " data for this run.")
	}
	return m.renderHeader() + "\n" + m.viewport.View()
}

func (m Metrics) empty() bool {
	switch m.tab {
	case TabScalars:
		return len(m.data.Scalars) == 0
	case TabImages:
		return len(m.data.Images) == 0
	case TabAudio:
		return len(m.data.Audio) == 0
	case TabHistograms:
		return len(m.data.Histograms) == 0
	case TabText:
		return len(m.data.Text) == 0
	}
	return true
}

func (m Metrics) renderHeader() string {
	var header string
	switch m.tab {
	case TabScalars:
		header = fmt.Sprintf("%-*s %*s %*s %*s %*s",
			colTagW, "TAG", colStepW, "STEP", colValueW, "VALUE", colCountW, "POINTS", colAgeW, "UPDATED")
	case TabImages:
		header = fmt.Sprintf("%-*s %*s %*s %12s",
			colTagW, "TAG", colStepW, "STEP", colCountW, "SAMPLES", "SIZE")
	case TabAudio:
		header = fmt.Sprintf("%-*s %*s %*s %-12s",
			colTagW, "TAG", colStepW, "STEP", colCountW, "SAMPLES", "TYPE")
	case TabHistograms:
		header = fmt.Sprintf("%-*s %*s %*s",
			colTagW, "TAG", colStepW, "STEP", colCountW, "POINTS")
	case TabText:
		header = fmt.Sprintf("%-*s %*s  %s",
			colTagW, "TAG", colStepW, "STEP", "LATEST")
	}
	innerWidth := m.width - 2
	return styles.TextSecondaryStyle.Render(text.Truncate(header, innerWidth))
}

func (m Metrics) renderRows() string {
	innerWidth := m.width - 2
	var lines []string
	switch m.tab {
	case TabScalars:
		for _, row := range m.data.Scalars {
			line := fmt.Sprintf("%-*s %*s %*s %*d %*s",
				colTagW, text.Truncate(row.Tag, colTagW),
				colStepW, text.FormatStep(row.Step),
				colValueW, text.FormatValue(row.Value),
				colCountW, row.Points,
				colAgeW, text.RelativeTime(row.WallTime),
			)
			lines = append(lines, text.Truncate(line, innerWidth))
		}
	case TabImages:
		for _, row := range m.data.Images {
			size := "?"
			if row.Width > 0 && row.Height > 0 {
				size = fmt.Sprintf("%dx%d", row.Width, row.Height)
			}
			line := fmt.Sprintf("%-*s %*s %*d %12s",
				colTagW, text.Truncate(row.Tag, colTagW),
				colStepW, text.FormatStep(row.Step),
				colCountW, row.Samples,
				size,
			)
			lines = append(lines, text.Truncate(line, innerWidth))
		}
	case TabAudio:
		for _, row := range m.data.Audio {
			line := fmt.Sprintf("%-*s %*s %*d %-12s",
				colTagW, text.Truncate(row.Tag, colTagW),
				colStepW, text.FormatStep(row.Step),
				colCountW, row.Samples,
				row.ContentType,
			)
			lines = append(lines, text.Truncate(line, innerWidth))
		}
	case TabHistograms:
		for _, row := range m.data.Histograms {
			line := fmt.Sprintf("%-*s %*s %*d",
				colTagW, text.Truncate(row.Tag, colTagW),
				colStepW, text.FormatStep(row.Step),
				colCountW, row.Points,
			)
			lines = append(lines, text.Truncate(line, innerWidth))
		}
	case TabText:
		for _, row := range m.data.Text {
			snippet := strings.ReplaceAll(row.Snippet, "\n", " ")
			line := fmt.Sprintf("%-*s %*s  %s",
				colTagW, text.Truncate(row.Tag, colTagW),
				colStepW, text.FormatStep(row.Step),
				snippet,
			)
			lines = append(lines, text.Truncate(line, innerWidth))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Metrics) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w - 2
	// border top/bottom plus the column header row
	vh := h - 3
	if vh < 0 {
		vh = 0
	}
	m.viewport.Height = vh
	if m.hasData {
		m.viewport.SetContent(m.renderRows())
	}
}

func (m *Metrics) SetFocused(focused bool) {
	m.focused = focused
}
