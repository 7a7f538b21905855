package tb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is where a locally started TensorBoard listens.
const DefaultBaseURL = "http://localhost:6006"

// DefaultTimeout bounds every request the client makes.
const DefaultTimeout = 10 * time.Second

// Client talks to the web API of a running TensorBoard server. It holds one
// reusable http.Client for its lifetime; call Close when done with it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, DefaultTimeout)
}

func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server URL the client was constructed with.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases the client's pooled connections. The Client must not be
// used afterwards.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// get issues one GET against endpoint with the given query parameters and
// decodes the JSON body into out. Failures are typed: *ConnectionError when
// the server cannot be reached, *APIError on a non-2xx status.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ConnectionError{BaseURL: c.baseURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{BaseURL: c.baseURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), 200),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       "malformed response: " + truncate(err.Error(), 120),
		}
	}
	return nil
}

// Runs returns the names of all runs the server knows, in server order.
func (c *Client) Runs(ctx context.Context) ([]string, error) {
	var runs []string
	if err := c.get(ctx, "/data/runs", nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// Environment returns server version and data location info.
func (c *Client) Environment(ctx context.Context) (*Environment, error) {
	var env Environment
	if err := c.get(ctx, "/data/environment", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Logdir returns the log directory the server is serving.
func (c *Client) Logdir(ctx context.Context) (*Logdir, error) {
	var ld Logdir
	if err := c.get(ctx, "/data/logdir", nil, &ld); err != nil {
		return nil, err
	}
	return &ld, nil
}

// PluginsListing returns the plugins the server has loaded.
func (c *Client) PluginsListing(ctx context.Context) (PluginsListing, error) {
	var pl PluginsListing
	if err := c.get(ctx, "/data/plugins_listing", nil, &pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// ScalarTags returns the scalar tags recorded for one run.
func (c *Client) ScalarTags(ctx context.Context, run string) (ScalarTags, error) {
	var tags ScalarTags
	params := url.Values{"run": {run}}
	if err := c.get(ctx, "/data/plugin/scalars/tags", params, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Scalars returns the time series for one run and tag.
func (c *Client) Scalars(ctx context.Context, run, tag string) ([]ScalarPoint, error) {
	var points []ScalarPoint
	params := url.Values{"run": {run}, "tag": {tag}, "format": {"json"}}
	if err := c.get(ctx, "/data/plugin/scalars/scalars", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// ImageTags returns the image tags for all runs.
func (c *Client) ImageTags(ctx context.Context) (ImageTags, error) {
	var tags ImageTags
	if err := c.get(ctx, "/data/plugin/images/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Images returns image sample metadata for one run, tag and sample index.
func (c *Client) Images(ctx context.Context, run, tag string, sample int) ([]ImageMetadata, error) {
	var images []ImageMetadata
	params := url.Values{"run": {run}, "tag": {tag}, "sample": {strconv.Itoa(sample)}}
	if err := c.get(ctx, "/data/plugin/images/images", params, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// AudioTags returns the audio tags for all runs.
func (c *Client) AudioTags(ctx context.Context) (AudioTags, error) {
	var tags AudioTags
	if err := c.get(ctx, "/data/plugin/audio/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Audio returns audio sample metadata for one run, tag and sample index.
func (c *Client) Audio(ctx context.Context, run, tag string, sample int) ([]AudioMetadata, error) {
	var clips []AudioMetadata
	params := url.Values{"run": {run}, "tag": {tag}, "sample": {strconv.Itoa(sample)}}
	if err := c.get(ctx, "/data/plugin/audio/audio", params, &clips); err != nil {
		return nil, err
	}
	return clips, nil
}

// DistributionTags returns the distribution tags for all runs.
func (c *Client) DistributionTags(ctx context.Context) (DistributionTags, error) {
	var tags DistributionTags
	if err := c.get(ctx, "/data/plugin/distributions/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Distributions returns histogram data for one run and tag.
func (c *Client) Distributions(ctx context.Context, run, tag string) ([]DistributionPoint, error) {
	var points []DistributionPoint
	params := url.Values{"run": {run}, "tag": {tag}}
	if err := c.get(ctx, "/data/plugin/distributions/distributions", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// TextTags returns the text tags for all runs.
func (c *Client) TextTags(ctx context.Context) (TextTags, error) {
	var tags TextTags
	if err := c.get(ctx, "/data/plugin/text/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TextData returns text entries for one run and tag.
func (c *Client) TextData(ctx context.Context, run, tag string) ([]TextEntry, error) {
	var entries []TextEntry
	params := url.Values{"run": {run}, "tag": {tag}}
	if err := c.get(ctx, "/data/plugin/text/text", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
