package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbtop/tbtop/internal/ui/border"
	"github.com/tbtop/tbtop/internal/ui/styles"
	"github.com/tbtop/tbtop/internal/ui/text"
)

type RunList struct {
	runs         []string
	filtered     []string
	selected     int
	offset       int
	width        int
	height       int
	lastKeyG     bool
	lastKeyT     time.Time
	filterActive bool
	filterText   string
	filterInput  textinput.Model
	focused      bool
}

func NewRunList() RunList {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 64

	return RunList{filterInput: ti}
}

func (r RunList) Update(msg tea.Msg) (RunList, tea.Cmd) {
	if m, ok := msg.(RunsUpdatedMsg); ok {
		return r.setRuns(m.Runs)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if r.filterActive {
		return r.updateFilter(key)
	}

	switch key.String() {
	case "/":
		r.filterActive = true
		r.filterInput.Focus()
		return r, nil
	case "j", "down":
		if r.selected < len(r.filtered)-1 {
			r.selected++
			r.scrollToSelection()
			return r, r.selectionCmd()
		}
		r.lastKeyG = false
	case "k", "up":
		if r.selected > 0 {
			r.selected--
			r.scrollToSelection()
			return r, r.selectionCmd()
		}
		r.lastKeyG = false
	case "y":
		if sel := r.SelectedRun(); sel != "" {
			return r, func() tea.Msg { return YankMsg{Text: sel} }
		}
	case "G":
		r.selected = max(len(r.filtered)-1, 0)
		r.scrollToSelection()
		r.lastKeyG = false
		return r, r.selectionCmd()
	case "g":
		if r.lastKeyG && time.Since(r.lastKeyT) < 500*time.Millisecond {
			r.selected = 0
			r.scrollToSelection()
			r.lastKeyG = false
			return r, r.selectionCmd()
		}
		r.lastKeyG = true
		r.lastKeyT = time.Now()
	default:
		r.lastKeyG = false
	}
	return r, nil
}

// setRuns replaces the run set, keeping the selection on the same run name
// when it still exists.
func (r RunList) setRuns(runs []string) (RunList, tea.Cmd) {
	prev := r.SelectedRun()
	r.runs = runs
	r.applyFilter()

	if prev != "" {
		for i, name := range r.filtered {
			if name == prev {
				r.selected = i
				r.clampSelection()
				return r, nil
			}
		}
	}
	r.clampSelection()
	// Selection landed on a different run (or the first one); let the
	// metrics panel know so it can refetch.
	if sel := r.SelectedRun(); sel != "" && sel != prev {
		return r, r.selectionCmd()
	}
	return r, nil
}

func (r *RunList) updateFilter(msg tea.KeyMsg) (RunList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			r.filterText = ""
			r.filterInput.SetValue("")
		}
		r.filterActive = false
		r.filterInput.Blur()
		r.applyFilter()
		r.clampSelection()
		return *r, r.selectionCmd()
	}

	var cmd tea.Cmd
	r.filterInput, cmd = r.filterInput.Update(msg)
	r.filterText = r.filterInput.Value()
	r.applyFilter()
	r.clampSelection()
	return *r, cmd
}

func (r RunList) selectionCmd() tea.Cmd {
	sel := r.SelectedRun()
	if sel == "" {
		return nil
	}
	return func() tea.Msg { return RunSelectedMsg{Run: sel} }
}

func (r RunList) View() string {
	innerWidth := r.width - 2
	innerHeight := r.height - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	info := fmt.Sprintf("%d", len(r.filtered))
	if len(r.filtered) != len(r.runs) {
		info = fmt.Sprintf("%d/%d", len(r.filtered), len(r.runs))
	}

	var keybinds []border.Keybind
	if r.focused {
		keybinds = []border.Keybind{
			{Key: "j/k", Label: " move"},
			{Key: "y", Label: "ank"},
			{Key: "/", Label: "filter"},
		}
	}

	content := r.renderContent(innerWidth, innerHeight)
	return border.RenderPanelWithInfo("[1] Runs", info, content, keybinds, r.width, r.height, r.focused)
}

func (r RunList) renderContent(width, height int) string {
	if len(r.filtered) == 0 {
		if r.filterActive || r.filterText != "" {
			return r.renderFilterBar(width) + "\nNo matching runs."
		}
		if r.runs == nil {
			return styles.TextDimStyle.Render("Waiting for TensorBoard...")
		}
		return "No runs in this log directory."
	}

	var b strings.Builder

	availableRows := height
	if r.filterActive {
		b.WriteString(r.renderFilterBar(width))
		b.WriteString("\n")
		availableRows--
	}

	if r.offset > 0 {
		b.WriteString(styles.TextDimStyle.Render("  ▲"))
		b.WriteString("\n")
		availableRows--
	}

	end := r.offset + availableRows
	if end > len(r.filtered) {
		end = len(r.filtered)
	}
	// Reserve a row for bottom scroll indicator if needed
	if end < len(r.filtered) && availableRows > 1 {
		end = r.offset + availableRows - 1
		if end > len(r.filtered) {
			end = len(r.filtered)
		}
	}

	for i := r.offset; i < end; i++ {
		name := text.TruncateLeft(r.filtered[i], width-2)
		var line string
		if i == r.selected {
			line = styles.SelectedRowStyle.Width(width).Render("▸ " + name)
		} else {
			line = "  " + styles.TextPrimaryStyle.Render(name)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(r.filtered) {
		b.WriteString("\n")
		b.WriteString(styles.TextDimStyle.Render("  ▼"))
	}

	return b.String()
}

func (r *RunList) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.filterInput.Width = w - 6
	r.clampSelection()
}

func (r *RunList) SetFocused(focused bool) {
	r.focused = focused
}

// SelectedRun returns the currently selected run name, or "" when the list
// is empty.
func (r RunList) SelectedRun() string {
	if len(r.filtered) == 0 || r.selected >= len(r.filtered) {
		return ""
	}
	return r.filtered[r.selected]
}

func (r *RunList) applyFilter() {
	if r.filterText == "" {
		r.filtered = r.runs
		return
	}
	query := strings.ToLower(r.filterText)
	filtered := make([]string, 0, len(r.runs))
	for _, name := range r.runs {
		if strings.Contains(strings.ToLower(name), query) {
			filtered = append(filtered, name)
		}
	}
	r.filtered = filtered
}

func (r *RunList) clampSelection() {
	if len(r.filtered) == 0 {
		r.selected = 0
		r.offset = 0
		return
	}
	if r.selected >= len(r.filtered) {
		r.selected = len(r.filtered) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
	r.scrollToSelection()
}

func (r *RunList) scrollToSelection() {
	visible := r.visibleRows()
	if visible <= 0 {
		return
	}
	if r.selected < r.offset {
		r.offset = r.selected
	}
	if r.selected >= r.offset+visible {
		r.offset = r.selected - visible + 1
	}
	maxOffset := len(r.filtered) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if r.offset > maxOffset {
		r.offset = maxOffset
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r RunList) visibleRows() int {
	rows := r.height - 2 // border top/bottom
	if r.filterActive {
		rows--
	}
	if r.offset > 0 {
		rows--
	}
	if r.offset+rows < len(r.filtered) {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (r RunList) renderFilterBar(width int) string {
	return "/ " + r.filterInput.View()
}

// FilterActive reports whether the filter input is currently active.
func (r RunList) FilterActive() bool {
	return r.filterActive
}
