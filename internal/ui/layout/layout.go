package layout

// Layout holds the computed dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Header row (title + tab bar)
	HeaderWidth  int
	HeaderHeight int

	// Main row panels
	RunListWidth  int
	RunListHeight int
	MetricsWidth  int
	MetricsHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 60
	MinHeight = 16

	HeaderRows = 2

	LeftColWeight  = 0.30
	RightColWeight = 0.70
)

// Calculate computes panel dimensions from terminal size.
// Subtracts the header rows and 1 row for the status bar before splitting
// the remaining height between the run list and the metrics view.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	mainHeight := termHeight - HeaderRows - 1 // header + status bar

	runListWidth := int(float64(termWidth) * LeftColWeight)
	metricsWidth := termWidth - runListWidth

	l.HeaderWidth = termWidth
	l.HeaderHeight = HeaderRows

	l.RunListWidth = runListWidth
	l.RunListHeight = mainHeight
	l.MetricsWidth = metricsWidth
	l.MetricsHeight = mainHeight

	l.StatusBarWidth = termWidth

	return l
}
