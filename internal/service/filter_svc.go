package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

// MaxJoinedChannels caps how many unique channels are joined per run.
const MaxJoinedChannels = 500

// FilterService joins channel metadata onto a record list and applies the
// secondary filters.
//
// The two joined filters have deliberately different missing-data policies:
// the region filter is fail-closed (unknown country drops the record), the
// subscriber filter is fail-open (unknown count keeps it). That asymmetry
// matches long-standing dashboard behavior and is pinned by tests; do not
// unify the two without a product decision.
type FilterService struct {
	api Platform
}

func NewFilterService(api Platform) *FilterService {
	return &FilterService{api: api}
}

// JoinAndFilter fetches one ChannelRecord per unique referenced channel,
// then applies the enabled filters in order: min-views, region, subscribers.
func (s *FilterService) JoinAndFilter(ctx context.Context, records []model.VideoRecord, opts model.FilterOptions) ([]model.VideoRecord, model.FilterReport, error) {
	var report model.FilterReport

	if opts.MinViews > 0 {
		records, report.RemovedByMinViews = applyMinViews(records, opts.MinViews)
	}

	needJoin := opts.StrictRegion || opts.MinSubscribers > 0
	if needJoin && len(records) > 0 {
		channels, err := s.joinChannels(ctx, records)
		if err != nil {
			return nil, report, err
		}
		if opts.StrictRegion {
			records, report.RemovedByRegion = applyRegionFilter(records, channels, opts.Region)
		}
		if opts.MinSubscribers > 0 {
			records, report.RemovedBySubscribers = applySubscriberFilter(records, channels, opts.MinSubscribers)
		}
	}

	report.Remaining = len(records)
	return records, report, nil
}

// joinChannels fetches metadata for each unique channel referenced by the
// records, at most once per channel, capped at MaxJoinedChannels.
func (s *FilterService) joinChannels(ctx context.Context, records []model.VideoRecord) (map[string]model.ChannelRecord, error) {
	seen := make(map[string]struct{}, len(records))
	var ids []string
	for _, r := range records {
		if r.ChannelID == "" {
			continue
		}
		if _, ok := seen[r.ChannelID]; ok {
			continue
		}
		seen[r.ChannelID] = struct{}{}
		ids = append(ids, r.ChannelID)
		if len(ids) == MaxJoinedChannels {
			break
		}
	}

	joined := make(map[string]model.ChannelRecord, len(ids))
	for _, batch := range chunkIDs(ids, youtube.MaxBatchSize) {
		fetched, err := s.api.ChannelsByID(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("fetch channel metadata: %w", err)
		}
		for _, ch := range fetched {
			joined[ch.ChannelID] = ch
		}
	}
	return joined, nil
}

// applyRegionFilter keeps a record only when its channel is joined AND has a
// country matching the region (case-insensitive). Fail-closed.
func applyRegionFilter(records []model.VideoRecord, channels map[string]model.ChannelRecord, regionCode string) ([]model.VideoRecord, int) {
	kept := records[:0]
	for _, r := range records {
		ch, ok := channels[r.ChannelID]
		if ok && ch.Country != "" && strings.EqualFold(ch.Country, regionCode) {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

// applySubscriberFilter drops a record only when its channel's subscriber
// count is known and below min. Fail-open: unjoined channels and hidden
// counts are kept.
func applySubscriberFilter(records []model.VideoRecord, channels map[string]model.ChannelRecord, min int64) ([]model.VideoRecord, int) {
	kept := records[:0]
	for _, r := range records {
		ch, ok := channels[r.ChannelID]
		if ok && ch.SubscriberCount != nil && *ch.SubscriberCount < min {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

func applyMinViews(records []model.VideoRecord, min int64) ([]model.VideoRecord, int) {
	kept := records[:0]
	for _, r := range records {
		if r.ViewCount >= min {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}
