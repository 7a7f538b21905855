package ui

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbtop/tbtop/internal/tb"
	"github.com/tbtop/tbtop/internal/ui/panels"
)

const fetchTimeout = 15 * time.Second

// metricsClient is the slice of the TensorBoard client the metrics fetch
// needs. Narrowed for tests.
type metricsClient interface {
	ScalarTags(ctx context.Context, run string) (tb.ScalarTags, error)
	Scalars(ctx context.Context, run, tag string) ([]tb.ScalarPoint, error)
	ImageTags(ctx context.Context) (tb.ImageTags, error)
	Images(ctx context.Context, run, tag string, sample int) ([]tb.ImageMetadata, error)
	AudioTags(ctx context.Context) (tb.AudioTags, error)
	Audio(ctx context.Context, run, tag string, sample int) ([]tb.AudioMetadata, error)
	DistributionTags(ctx context.Context) (tb.DistributionTags, error)
	Distributions(ctx context.Context, run, tag string) ([]tb.DistributionPoint, error)
	TextTags(ctx context.Context) (tb.TextTags, error)
	TextData(ctx context.Context, run, tag string) ([]tb.TextEntry, error)
}

// fetchMetricsCmd loads the given run's data for one metrics category in
// the background and delivers it as a MetricsLoadedMsg.
func fetchMetricsCmd(client metricsClient, run string, tab panels.Tab) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return panels.MetricsLoadedMsg{Data: fetchMetrics(ctx, client, run, tab)}
	}
}

func fetchMetrics(ctx context.Context, client metricsClient, run string, tab panels.Tab) panels.MetricsData {
	data := panels.MetricsData{Run: run, Tab: tab}

	var err error
	switch tab {
	case panels.TabScalars:
		data.Scalars, err = fetchScalars(ctx, client, run)
	case panels.TabImages:
		data.Images, err = fetchImages(ctx, client, run)
	case panels.TabAudio:
		data.Audio, err = fetchAudio(ctx, client, run)
	case panels.TabHistograms:
		data.Histograms, err = fetchHistograms(ctx, client, run)
	case panels.TabText:
		data.Text, err = fetchText(ctx, client, run)
	}
	if err != nil {
		data.Err = err.Error()
	}
	return data
}

func fetchScalars(ctx context.Context, client metricsClient, run string) ([]panels.ScalarRow, error) {
	tags, err := client.ScalarTags(ctx, run)
	if err != nil {
		return nil, err
	}
	rows := make([]panels.ScalarRow, 0, len(tags))
	for _, tag := range sortedKeys(tags) {
		points, err := client.Scalars(ctx, run, tag)
		if err != nil {
			return nil, err
		}
		row := panels.ScalarRow{Tag: tag, Points: len(points)}
		if len(points) > 0 {
			last := points[len(points)-1]
			row.Step = last.Step
			row.Value = last.Value
			row.WallTime = time.Unix(int64(last.WallTime), 0)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fetchImages(ctx context.Context, client metricsClient, run string) ([]panels.ImageRow, error) {
	all, err := client.ImageTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := all[run]
	rows := make([]panels.ImageRow, 0, len(tags))
	for _, tag := range sortedKeys(tags) {
		row := panels.ImageRow{Tag: tag, Samples: tags[tag].Samples}
		images, err := client.Images(ctx, run, tag, 0)
		if err != nil {
			return nil, err
		}
		if len(images) > 0 {
			last := images[len(images)-1]
			row.Step = last.Step
			row.Width = last.Width
			row.Height = last.Height
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fetchAudio(ctx context.Context, client metricsClient, run string) ([]panels.AudioRow, error) {
	all, err := client.AudioTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := all[run]
	rows := make([]panels.AudioRow, 0, len(tags))
	for _, tag := range sortedKeys(tags) {
		row := panels.AudioRow{Tag: tag, Samples: tags[tag].Samples}
		clips, err := client.Audio(ctx, run, tag, 0)
		if err != nil {
			return nil, err
		}
		if len(clips) > 0 {
			last := clips[len(clips)-1]
			row.Step = last.Step
			row.ContentType = last.ContentType
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fetchHistograms(ctx context.Context, client metricsClient, run string) ([]panels.HistogramRow, error) {
	all, err := client.DistributionTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := all[run]
	rows := make([]panels.HistogramRow, 0, len(tags))
	for _, tag := range sortedKeys(tags) {
		points, err := client.Distributions(ctx, run, tag)
		if err != nil {
			return nil, err
		}
		row := panels.HistogramRow{Tag: tag, Points: len(points)}
		if len(points) > 0 {
			row.Step = points[len(points)-1].Step
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fetchText(ctx context.Context, client metricsClient, run string) ([]panels.TextRow, error) {
	all, err := client.TextTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := all[run]
	rows := make([]panels.TextRow, 0, len(tags))
	for _, tag := range sortedKeys(tags) {
		entries, err := client.TextData(ctx, run, tag)
		if err != nil {
			return nil, err
		}
		row := panels.TextRow{Tag: tag}
		if len(entries) > 0 {
			last := entries[len(entries)-1]
			row.Step = last.Step
			row.Snippet = last.Text
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
