package model

import "time"

// Run modes.
const (
	ModeKeywords = "keywords"
	ModeTrending = "trending"
)

// KeywordParams configures one keyword-mode aggregation run.
type KeywordParams struct {
	Keywords      []string `json:"keywords"`
	Days          int      `json:"days"`
	Region        string   `json:"region"`
	PerKeywordCap int      `json:"perKeywordCap"`
}

// TrendingParams configures one trending-mode run.
type TrendingParams struct {
	Region string `json:"region"`
	Cap    int    `json:"cap"`
}

// FilterOptions are the secondary filters applied after aggregation.
type FilterOptions struct {
	MinViews       int64  `json:"minViews"`
	StrictRegion   bool   `json:"strictRegion"`
	Region         string `json:"region"`
	MinSubscribers int64  `json:"minSubscribers"`
}

// FilterReport counts how many records each filter removed.
type FilterReport struct {
	RemovedByMinViews    int `json:"removedByMinViews"`
	RemovedByRegion      int `json:"removedByRegion"`
	RemovedBySubscribers int `json:"removedBySubscribers"`
	Remaining            int `json:"remaining"`
}

// RunWarning reports a recoverable per-keyword failure. The keyword simply
// contributed zero candidates; the run continued.
type RunWarning struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// RunResult is the output of one aggregation run before secondary filters.
type RunResult struct {
	Records  []VideoRecord `json:"records"`
	Warnings []RunWarning  `json:"warnings,omitempty"`
}

// RunRequest is the POST /api/runs body.
type RunRequest struct {
	Keywords       []string `json:"keywords"`
	Days           int      `json:"days"`
	Region         string   `json:"region"`
	PerKeywordCap  int      `json:"perKeywordCap"`
	MinViews       int64    `json:"minViews"`
	StrictRegion   bool     `json:"strictRegion"`
	MinSubscribers int64    `json:"minSubscribers"`
	GroupByChannel bool     `json:"groupByChannel"`
}

// RunResponse is the POST /api/runs and GET /api/trending reply.
type RunResponse struct {
	RunID    string         `json:"runId"`
	Mode     string         `json:"mode"`
	Records  []VideoRecord  `json:"records"`
	Channels []ChannelGroup `json:"channels,omitempty"`
	Filters  FilterReport   `json:"filters"`
	Warnings []RunWarning   `json:"warnings,omitempty"`
	TookMs   int64          `json:"tookMs"`
}

// Run is one recorded aggregation run (run history table).
type Run struct {
	ID                   string    `json:"id"`
	Mode                 string    `json:"mode"`
	Region               string    `json:"region"`
	Keywords             []string  `json:"keywords,omitempty"`
	Days                 int       `json:"days,omitempty"`
	ResultCount          int       `json:"resultCount"`
	RemovedByMinViews    int       `json:"removedByMinViews"`
	RemovedByRegion      int       `json:"removedByRegion"`
	RemovedBySubscribers int       `json:"removedBySubscribers"`
	DurationMs           int64     `json:"durationMs"`
	CreatedAt            time.Time `json:"createdAt"`
}

// RunTotals are aggregate counters over the run history, for /api/stats.
type RunTotals struct {
	TotalRuns    int `json:"totalRuns"`
	KeywordRuns  int `json:"keywordRuns"`
	TrendingRuns int `json:"trendingRuns"`
	TotalRecords int `json:"totalRecords"`
}
