package model

import "time"

// VideoRecord is one aggregated result item. Raw fields come straight from
// the platform response; display fields are derived after aggregation so
// cached copies stay time-independent.
type VideoRecord struct {
	ID              string    `json:"videoId"`
	Title           string    `json:"title"`
	ChannelName     string    `json:"channel"`
	ChannelID       string    `json:"channelId"`
	PublishedAt     time.Time `json:"publishedAt"`
	PublishedAtRaw  string    `json:"publishedAtRaw,omitempty"` // upstream string, kept for display fallback; must survive the cache round trip

	ViewCount       int64     `json:"views"`
	LikeCount       *int64    `json:"likes"` // nil when the uploader hides ratings
	DurationRaw     string    `json:"durationIso,omitempty"`
	DurationDisplay string    `json:"duration"`
	ThumbnailURL    string    `json:"thumbnail,omitempty"`
	URL             string    `json:"url"`

	// Derived per run, not cached.
	PublishedDisplay string  `json:"publishedDisplay,omitempty"`
	ViewsPerDay      float64 `json:"viewsPerDay"`
}

// ChannelGroup is the per-channel rollup used by the channel card view.
type ChannelGroup struct {
	ChannelName     string   `json:"channel"`
	ChannelID       string   `json:"channelId"`
	VideoCount      int      `json:"videoCount"`
	TotalViews      int64    `json:"totalViews"`
	AvgViews        float64  `json:"avgViews"`
	SampleTitles    []string `json:"sampleTitles"`
	SampleThumbnail string   `json:"sampleThumbnail,omitempty"`
}
