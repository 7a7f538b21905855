package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/tbtop/tbtop/internal/tb"
	"github.com/tbtop/tbtop/internal/ui/panels"
)

// stubMetricsClient serves canned plugin data for one run.
type stubMetricsClient struct {
	scalarTags tb.ScalarTags
	scalars    map[string][]tb.ScalarPoint
	imageTags  tb.ImageTags
	images     map[string][]tb.ImageMetadata
	audioTags  tb.AudioTags
	audio      map[string][]tb.AudioMetadata
	distTags   tb.DistributionTags
	dists      map[string][]tb.DistributionPoint
	textTags   tb.TextTags
	text       map[string][]tb.TextEntry
	err        error
}

func (s *stubMetricsClient) ScalarTags(_ context.Context, run string) (tb.ScalarTags, error) {
	return s.scalarTags, s.err
}
func (s *stubMetricsClient) Scalars(_ context.Context, run, tag string) ([]tb.ScalarPoint, error) {
	return s.scalars[tag], s.err
}
func (s *stubMetricsClient) ImageTags(_ context.Context) (tb.ImageTags, error) {
	return s.imageTags, s.err
}
func (s *stubMetricsClient) Images(_ context.Context, run, tag string, sample int) ([]tb.ImageMetadata, error) {
	return s.images[tag], s.err
}
func (s *stubMetricsClient) AudioTags(_ context.Context) (tb.AudioTags, error) {
	return s.audioTags, s.err
}
func (s *stubMetricsClient) Audio(_ context.Context, run, tag string, sample int) ([]tb.AudioMetadata, error) {
	return s.audio[tag], s.err
}
func (s *stubMetricsClient) DistributionTags(_ context.Context) (tb.DistributionTags, error) {
	return s.distTags, s.err
}
func (s *stubMetricsClient) Distributions(_ context.Context, run, tag string) ([]tb.DistributionPoint, error) {
	return s.dists[tag], s.err
}
func (s *stubMetricsClient) TextTags(_ context.Context) (tb.TextTags, error) {
	return s.textTags, s.err
}
func (s *stubMetricsClient) TextData(_ context.Context, run, tag string) ([]tb.TextEntry, error) {
	return s.text[tag], s.err
}

func TestFetchScalarsBuildsSortedRows(t *testing.T) {
	client := &stubMetricsClient{
		scalarTags: tb.ScalarTags{"loss": {}, "accuracy": {}},
		scalars: map[string][]tb.ScalarPoint{
			"loss":     {{WallTime: 100, Step: 1, Value: 0.9}, {WallTime: 200, Step: 2, Value: 0.5}},
			"accuracy": {{WallTime: 200, Step: 2, Value: 0.8}},
		},
	}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabScalars)
	if data.Err != "" {
		t.Fatalf("unexpected error: %s", data.Err)
	}
	if len(data.Scalars) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.Scalars))
	}
	// Tags come back alphabetically.
	if data.Scalars[0].Tag != "accuracy" || data.Scalars[1].Tag != "loss" {
		t.Errorf("expected sorted tags, got %s, %s", data.Scalars[0].Tag, data.Scalars[1].Tag)
	}
	// Rows carry the latest sample.
	loss := data.Scalars[1]
	if loss.Step != 2 || loss.Value != 0.5 || loss.Points != 2 {
		t.Errorf("expected latest sample, got step=%d value=%v points=%d", loss.Step, loss.Value, loss.Points)
	}
}

func TestFetchImagesForRun(t *testing.T) {
	client := &stubMetricsClient{
		imageTags: tb.ImageTags{
			"exp1":  {"samples": {Samples: 3}},
			"other": {"ignored": {Samples: 9}},
		},
		images: map[string][]tb.ImageMetadata{
			"samples": {{Step: 10, Width: 28, Height: 28}},
		},
	}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabImages)
	if len(data.Images) != 1 {
		t.Fatalf("expected 1 row, got %d", len(data.Images))
	}
	row := data.Images[0]
	if row.Tag != "samples" || row.Samples != 3 || row.Width != 28 {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestFetchHistograms(t *testing.T) {
	client := &stubMetricsClient{
		distTags: tb.DistributionTags{"exp1": {"weights": {}}},
		dists: map[string][]tb.DistributionPoint{
			"weights": {{Step: 1}, {Step: 2}, {Step: 3}},
		},
	}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabHistograms)
	if len(data.Histograms) != 1 {
		t.Fatalf("expected 1 row, got %d", len(data.Histograms))
	}
	if data.Histograms[0].Step != 3 || data.Histograms[0].Points != 3 {
		t.Errorf("unexpected row: %+v", data.Histograms[0])
	}
}

func TestFetchTextLatestEntry(t *testing.T) {
	client := &stubMetricsClient{
		textTags: tb.TextTags{"exp1": {"notes": {Samples: 2}}},
		text: map[string][]tb.TextEntry{
			"notes": {{Step: 1, Text: "old"}, {Step: 2, Text: "new"}},
		},
	}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabText)
	if len(data.Text) != 1 {
		t.Fatalf("expected 1 row, got %d", len(data.Text))
	}
	if data.Text[0].Snippet != "new" {
		t.Errorf("expected latest entry, got %q", data.Text[0].Snippet)
	}
}

func TestFetchErrorPropagates(t *testing.T) {
	client := &stubMetricsClient{err: errors.New("scalars request failed")}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabScalars)
	if data.Err != "scalars request failed" {
		t.Errorf("expected fetch error, got %q", data.Err)
	}
	if len(data.Scalars) != 0 {
		t.Error("expected no rows on error")
	}
}

func TestFetchNoDataForRun(t *testing.T) {
	client := &stubMetricsClient{audioTags: tb.AudioTags{"other": {"clip": {}}}}

	data := fetchMetrics(context.Background(), client, "exp1", panels.TabAudio)
	if data.Err != "" {
		t.Fatalf("unexpected error: %s", data.Err)
	}
	if len(data.Audio) != 0 {
		t.Errorf("expected no rows for run without audio, got %d", len(data.Audio))
	}
}
