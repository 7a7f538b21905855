package panels

import "time"

// RunsUpdatedMsg is sent when the set of runs known to the backend changed.
type RunsUpdatedMsg struct {
	Runs []string
}

// ConnStatusMsg is sent when the connection status or error text changed.
type ConnStatusMsg struct {
	Connected bool
	Err       string
}

// RunSelectedMsg is sent when the run list selection moves to a new run.
type RunSelectedMsg struct {
	Run string
}

// Tab identifies a metrics category, one per TensorBoard plugin group.
type Tab int

const (
	TabScalars Tab = iota
	TabImages
	TabAudio
	TabHistograms
	TabText
)

const TabCount = 5

func (t Tab) String() string {
	switch t {
	case TabScalars:
		return "SCALARS"
	case TabImages:
		return "IMAGES"
	case TabAudio:
		return "AUDIO"
	case TabHistograms:
		return "HISTOGRAMS"
	case TabText:
		return "TEXT"
	default:
		return "?"
	}
}

// ScalarRow is one tag's latest state in the scalars tab.
type ScalarRow struct {
	Tag      string
	Step     int64
	Value    float64
	WallTime time.Time
	Points   int
}

// ImageRow is one tag's latest state in the images tab.
type ImageRow struct {
	Tag     string
	Samples int
	Step    int64
	Width   int
	Height  int
}

// AudioRow is one tag's latest state in the audio tab.
type AudioRow struct {
	Tag         string
	Samples     int
	Step        int64
	ContentType string
}

// HistogramRow is one tag's latest state in the histograms tab.
type HistogramRow struct {
	Tag    string
	Step   int64
	Points int
}

// TextRow is one tag's latest entry in the text tab.
type TextRow struct {
	Tag     string
	Step    int64
	Snippet string
}

// MetricsData is the fetched content for one run and tab.
type MetricsData struct {
	Run        string
	Tab        Tab
	Scalars    []ScalarRow
	Images     []ImageRow
	Audio      []AudioRow
	Histograms []HistogramRow
	Text       []TextRow
	Err        string
}

// MetricsLoadedMsg delivers a completed metrics fetch to the metrics panel.
type MetricsLoadedMsg struct {
	Data MetricsData
}

// YankMsg requests that text be copied to the clipboard.
type YankMsg struct {
	Text string
}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}
