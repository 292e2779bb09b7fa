package youtube

import (
	"strconv"
	"time"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"

	"github.com/zaheerkhan4077/YTBNICHES/pkg/format"
)

// Upstream response shapes. Numeric statistics arrive as strings and may be
// absent entirely (hidden like counts, hidden subscriber counts).

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
	High    *thumbnail `json:"high"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string     `json:"title"`
		PublishedAt  string     `json:"publishedAt"`
		ChannelID    string     `json:"channelId"`
		ChannelTitle string     `json:"channelTitle"`
		Thumbnails   thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
		LikeCount string `json:"likeCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title      string     `json:"title"`
		Country    string     `json:"country"`
		Thumbnails thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	} `json:"statistics"`
}

type channelListResponse struct {
	Items []channelItem `json:"items"`
}

func mapVideo(it videoItem) model.VideoRecord {
	rec := model.VideoRecord{
		ID:              it.ID,
		Title:           it.Snippet.Title,
		ChannelName:     it.Snippet.ChannelTitle,
		ChannelID:       it.Snippet.ChannelID,
		PublishedAtRaw:  it.Snippet.PublishedAt,
		ViewCount:       parseCount(it.Statistics.ViewCount),
		LikeCount:       parseCountPtr(it.Statistics.LikeCount),
		DurationRaw:     it.ContentDetails.Duration,
		DurationDisplay: format.Duration(it.ContentDetails.Duration),
		ThumbnailURL:    pickThumbnail(it.Snippet.Thumbnails),
		URL:             "https://www.youtube.com/watch?v=" + it.ID,
	}
	if t, err := time.Parse(time.RFC3339, it.Snippet.PublishedAt); err == nil {
		rec.PublishedAt = t.UTC()
	}
	return rec
}

func mapChannel(it channelItem) model.ChannelRecord {
	rec := model.ChannelRecord{
		ChannelID: it.ID,
		Title:     it.Snippet.Title,
		Country:   it.Snippet.Country,
		AvatarURL: pickThumbnail(it.Snippet.Thumbnails),
	}
	if !it.Statistics.HiddenSubscriberCount {
		rec.SubscriberCount = parseCountPtr(it.Statistics.SubscriberCount)
	}
	return rec
}

// pickThumbnail applies the fixed resolution preference: medium, then high,
// then default, then none.
func pickThumbnail(t thumbnails) string {
	switch {
	case t.Medium != nil && t.Medium.URL != "":
		return t.Medium.URL
	case t.High != nil && t.High.URL != "":
		return t.High.URL
	case t.Default != nil && t.Default.URL != "":
		return t.Default.URL
	default:
		return ""
	}
}

// parseCount parses an upstream count string, defaulting to 0 when the
// field is absent or malformed rather than failing the record.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseCountPtr parses an optional count; absent or malformed input maps to
// nil, which is distinct from an explicit "0".
func parseCountPtr(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
