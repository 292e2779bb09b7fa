package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

// fakePlatform scripts upstream responses and records batch shapes.
type fakePlatform struct {
	searchResults map[string][]string
	searchErrs    map[string]error

	videos    map[string]model.VideoRecord
	videosErr error

	channels    map[string]model.ChannelRecord
	channelsErr error

	trending    []model.VideoRecord
	trendingErr error

	videoBatches   [][]string
	channelBatches [][]string
	searchCalls    []string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		searchResults: make(map[string][]string),
		searchErrs:    make(map[string]error),
		videos:        make(map[string]model.VideoRecord),
		channels:      make(map[string]model.ChannelRecord),
	}
}

func (f *fakePlatform) SearchIDs(_ context.Context, query, _ string, _ int, _ string) ([]string, error) {
	f.searchCalls = append(f.searchCalls, query)
	if err, ok := f.searchErrs[query]; ok {
		return nil, err
	}
	return f.searchResults[query], nil
}

func (f *fakePlatform) VideosByID(_ context.Context, ids []string) ([]model.VideoRecord, error) {
	if len(ids) > 50 {
		return nil, errors.New("batch too large")
	}
	f.videoBatches = append(f.videoBatches, ids)
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	var out []model.VideoRecord
	for _, id := range ids {
		if rec, ok := f.videos[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePlatform) Trending(_ context.Context, _ string, max int) ([]model.VideoRecord, error) {
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	if len(f.trending) > max {
		return f.trending[:max], nil
	}
	return f.trending, nil
}

func (f *fakePlatform) ChannelsByID(_ context.Context, ids []string) ([]model.ChannelRecord, error) {
	if len(ids) > 50 {
		return nil, errors.New("batch too large")
	}
	f.channelBatches = append(f.channelBatches, ids)
	if f.channelsErr != nil {
		return nil, f.channelsErr
	}
	var out []model.ChannelRecord
	for _, id := range ids {
		if rec, ok := f.channels[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// addVideo registers a minimal video record with the given view count.
func (f *fakePlatform) addVideo(id string, views int64) {
	f.videos[id] = model.VideoRecord{ID: id, ViewCount: views}
}

func manyIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%04d", i)
	}
	return ids
}
