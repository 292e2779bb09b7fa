package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"

	"github.com/zaheerkhan4077/YTBNICHES/pkg/format"
)

const (
	// SafetyMaxIDs caps the deduplicated candidate list per run, bounding
	// quota cost no matter how many keywords are submitted.
	SafetyMaxIDs = 500

	// MaxPerKeyword caps candidates per keyword search.
	MaxPerKeyword = 25

	// MaxTrendingCap caps the trending listing size (protocol page limit).
	MaxTrendingCap = 50
)

// AggregateService runs the fan-out / dedupe / batch-fetch pipeline.
type AggregateService struct {
	api Platform
}

func NewAggregateService(api Platform) *AggregateService {
	return &AggregateService{api: api}
}

// RunKeywords searches every keyword in order, merges candidate IDs
// first-seen, and fetches full metadata in protocol-size batches.
//
// A failed keyword search contributes zero candidates and a warning; a
// failed metadata batch fails the whole run.
func (s *AggregateService) RunKeywords(ctx context.Context, p model.KeywordParams) (*model.RunResult, error) {
	perKeyword := p.PerKeywordCap
	if perKeyword < 1 || perKeyword > MaxPerKeyword {
		perKeyword = MaxPerKeyword
	}
	// Truncated to the hour so repeated runs produce identical search
	// arguments and can share cached results.
	publishedAfter := time.Now().UTC().Truncate(time.Hour).AddDate(0, 0, -p.Days).Format(time.RFC3339)

	var ordered []string
	var warnings []model.RunWarning
	for _, kw := range p.Keywords {
		ids, err := s.api.SearchIDs(ctx, kw, publishedAfter, perKeyword, p.Region)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("aggregate: search %q failed: %v", kw, err)
			warnings = append(warnings, model.RunWarning{Keyword: kw, Message: err.Error()})
			continue
		}
		ordered = append(ordered, ids...)
	}

	unique := DedupeIDs(ordered, SafetyMaxIDs)
	records, err := s.fetchVideos(ctx, unique)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ApplyDerived(records, now)
	SortByViews(records)

	return &model.RunResult{Records: records, Warnings: warnings}, nil
}

// RunTrending fetches the region's most-popular chart.
func (s *AggregateService) RunTrending(ctx context.Context, p model.TrendingParams) (*model.RunResult, error) {
	max := p.Cap
	if max < 1 || max > MaxTrendingCap {
		max = MaxTrendingCap
	}

	records, err := s.api.Trending(ctx, p.Region, max)
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	now := time.Now().UTC()
	ApplyDerived(records, now)
	SortByViews(records)

	return &model.RunResult{Records: records}, nil
}

// fetchVideos splits ids into protocol-size batches and flattens the
// responses. Record order is batch order, then within-batch response order.
func (s *AggregateService) fetchVideos(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	var records []model.VideoRecord
	for _, batch := range chunkIDs(ids, youtube.MaxBatchSize) {
		fetched, err := s.api.VideosByID(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("fetch video metadata: %w", err)
		}
		records = append(records, fetched...)
	}
	return records, nil
}

// DedupeIDs removes duplicate identifiers keeping the first occurrence, and
// truncates the result to max. Output order is exactly first-seen order.
func DedupeIDs(ids []string, max int) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
		if len(unique) == max {
			break
		}
	}
	return unique
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// ApplyDerived fills the per-run display fields. Records come out of the
// cache without them so reused responses still show fresh relative times
// and velocities.
func ApplyDerived(records []model.VideoRecord, now time.Time) {
	for i := range records {
		r := &records[i]
		if r.PublishedAt.IsZero() {
			// Unparseable upstream timestamp: show it as-is, floor the
			// velocity denominator to one day.
			r.PublishedDisplay = r.PublishedAtRaw
			r.ViewsPerDay = float64(r.ViewCount)
			continue
		}
		r.PublishedDisplay = format.RelativeTime(r.PublishedAt, now)
		r.ViewsPerDay = format.ViewsPerDay(r.ViewCount, r.PublishedAt, now)
	}
}

// SortByViews orders records by view count descending, preserving the
// aggregation order among ties.
func SortByViews(records []model.VideoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ViewCount > records[j].ViewCount
	})
}
