package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

const (
	searchEndpoint   = "https://www.googleapis.com/youtube/v3/search"
	videosEndpoint   = "https://www.googleapis.com/youtube/v3/videos"
	channelsEndpoint = "https://www.googleapis.com/youtube/v3/channels"

	// MaxBatchSize is the protocol limit on IDs per metadata request.
	MaxBatchSize = 50

	// callInterval paces upstream calls issued within one run so bursts of
	// batches don't trip upstream rate limiting.
	callInterval = 120 * time.Millisecond
)

// APIError is a non-2xx response from the upstream API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube: upstream returned %d: %s", e.StatusCode, e.Body)
}

// Client issues requests against the YouTube Data API v3. All calls share
// one pacing limiter, so inter-keyword and inter-batch delays fall out of
// the same mechanism.
type Client struct {
	httpc   *http.Client
	apiKey  string
	limiter *rate.Limiter
	quota   *QuotaTracker
}

func NewClient(apiKey string, quota *QuotaTracker) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: API key is required")
	}
	return &Client{
		httpc:   &http.Client{Timeout: 20 * time.Second},
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(callInterval), 1),
		quota:   quota,
	}, nil
}

// SearchIDs returns candidate video IDs for one keyword, ranked by the
// upstream view-count ordering. publishedAfter is an RFC 3339 timestamp.
func (c *Client) SearchIDs(ctx context.Context, query, publishedAfter string, maxResults int, regionCode string) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("publishedAfter", publishedAfter)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "viewCount")
	if regionCode != "" {
		params.Set("regionCode", strings.ToUpper(regionCode))
	}

	var resp searchResponse
	if err := c.get(ctx, searchEndpoint, params, &resp, CostSearch); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	return ids, nil
}

// VideosByID fetches full metadata for a single batch of up to MaxBatchSize
// video IDs. Batching across larger lists is the caller's job.
func (c *Client) VideosByID(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("youtube: batch too large (max %d, got %d)", MaxBatchSize, len(ids))
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(len(ids)))

	var resp videoListResponse
	if err := c.get(ctx, videosEndpoint, params, &resp, CostVideos); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		records = append(records, mapVideo(it))
	}
	return records, nil
}

// Trending fetches the region's most-popular chart with full metadata.
func (c *Client) Trending(ctx context.Context, regionCode string, maxResults int) ([]model.VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "id,snippet,statistics,contentDetails")
	params.Set("chart", "mostPopular")
	params.Set("maxResults", strconv.Itoa(maxResults))
	if regionCode != "" {
		params.Set("regionCode", strings.ToUpper(regionCode))
	}

	var resp videoListResponse
	if err := c.get(ctx, videosEndpoint, params, &resp, CostVideos); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		records = append(records, mapVideo(it))
	}
	return records, nil
}

// ChannelsByID fetches channel metadata for a single batch of up to
// MaxBatchSize channel IDs.
func (c *Client) ChannelsByID(ctx context.Context, ids []string) ([]model.ChannelRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("youtube: batch too large (max %d, got %d)", MaxBatchSize, len(ids))
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(len(ids)))

	var resp channelListResponse
	if err := c.get(ctx, channelsEndpoint, params, &resp, CostChannels); err != nil {
		return nil, err
	}

	records := make([]model.ChannelRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		records = append(records, mapChannel(it))
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any, cost int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("youtube: request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.quota != nil {
		c.quota.Record(cost)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
