package tb

import (
	"encoding/json"
	"fmt"
)

// Response shapes for the TensorBoard web API. Field names follow the JSON
// the server actually emits, which mixes snake_case and camelCase.

// Environment maps /data/environment.
type Environment struct {
	DataLocation string `json:"data_location"`
	Version      string `json:"tensorboard_version"`
}

// Logdir maps /data/logdir.
type Logdir struct {
	Logdir string `json:"logdir"`
}

// PluginsListing maps /data/plugins_listing: plugin name -> path.
type PluginsListing map[string]string

// ScalarTagInfo describes one scalar tag.
type ScalarTagInfo struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// ScalarTags maps /data/plugin/scalars/tags for one run: tag -> info.
type ScalarTags map[string]ScalarTagInfo

// ScalarPoint is one sample of a scalar time series. The scalars endpoint
// returns each sample as a JSON triple [wall_time, step, value].
type ScalarPoint struct {
	WallTime float64
	Step     int64
	Value    float64
}

func (p *ScalarPoint) UnmarshalJSON(data []byte) error {
	var triple [3]float64
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("scalar point: %w", err)
	}
	p.WallTime = triple[0]
	p.Step = int64(triple[1])
	p.Value = triple[2]
	return nil
}

// ImageTagInfo describes one image tag.
type ImageTagInfo struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Samples     int    `json:"samples"`
}

// ImageTags maps /data/plugin/images/tags: run -> tag -> info.
type ImageTags map[string]map[string]ImageTagInfo

// ImageMetadata is one entry of /data/plugin/images/images.
type ImageMetadata struct {
	WallTime float64 `json:"wall_time"`
	Step     int64   `json:"step"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Query    string  `json:"query"`
}

// AudioTagInfo describes one audio tag.
type AudioTagInfo struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Samples     int    `json:"samples"`
}

// AudioTags maps /data/plugin/audio/tags: run -> tag -> info.
type AudioTags map[string]map[string]AudioTagInfo

// AudioMetadata is one entry of /data/plugin/audio/audio.
type AudioMetadata struct {
	WallTime    float64 `json:"wall_time"`
	Step        int64   `json:"step"`
	ContentType string  `json:"content_type"`
	Query       string  `json:"query"`
}

// DistributionTags maps /data/plugin/distributions/tags: run -> tag -> {}.
type DistributionTags map[string]map[string]struct{}

// DistributionPoint is one entry of /data/plugin/distributions/distributions.
type DistributionPoint struct {
	WallTime     float64   `json:"wall_time"`
	Step         int64     `json:"step"`
	Buckets      []float64 `json:"buckets"`
	BucketLimits []float64 `json:"bucket_limits"`
}

// TextTagInfo describes one text tag.
type TextTagInfo struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Samples     int    `json:"samples"`
}

// TextTags maps /data/plugin/text/tags: run -> tag -> info.
type TextTags map[string]map[string]TextTagInfo

// TextEntry is one entry of /data/plugin/text/text.
type TextEntry struct {
	WallTime float64 `json:"wall_time"`
	Step     int64   `json:"step"`
	Text     string  `json:"text"`
}
