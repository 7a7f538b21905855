package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbtop/tbtop/internal/ui/styles"
	"github.com/tbtop/tbtop/internal/ui/text"
)

// Header renders the top bar: app name, TensorBoard URL, and the metrics
// category tabs.
type Header struct {
	width    int
	url      string
	tab      Tab
	interval time.Duration
}

func NewHeader(url string) Header {
	return Header{url: url}
}

func (h *Header) SetSize(w int) {
	h.width = w
}

func (h *Header) SetTab(tab Tab) {
	h.tab = tab
}

func (h *Header) SetInterval(d time.Duration) {
	h.interval = d
}

func (h Header) View() string {
	name := styles.TitleStyle.Render("tbtop")
	url := styles.TextSecondaryStyle.Render(h.url)
	interval := styles.TextDimStyle.Render("poll: " + text.FormatInterval(h.interval))

	left := " " + name + "  " + url
	right := interval + " "
	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	topLine := left + strings.Repeat(" ", gap) + right

	var tabs []string
	for i := 0; i < TabCount; i++ {
		t := Tab(i)
		if t == h.tab {
			tabs = append(tabs, styles.TabActiveStyle.Render(t.String()))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(t.String()))
		}
	}
	tabLine := " " + strings.Join(tabs, styles.TextDimStyle.Render("  ·  "))

	return text.Truncate(topLine, h.width) + "\n" + text.Truncate(tabLine, h.width)
}
