package service

import (
	"context"
	"strconv"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/pkg/cachekey"
)

// Platform is the upstream API surface the pipeline consumes. Batch calls
// take at most the protocol batch size of IDs; batching across larger lists
// belongs to the pipeline, not the client.
type Platform interface {
	SearchIDs(ctx context.Context, query, publishedAfter string, maxResults int, regionCode string) ([]string, error)
	VideosByID(ctx context.Context, ids []string) ([]model.VideoRecord, error)
	Trending(ctx context.Context, regionCode string, maxResults int) ([]model.VideoRecord, error)
	ChannelsByID(ctx context.Context, ids []string) ([]model.ChannelRecord, error)
}

// CachedPlatform memoizes search, video and channel lookups by argument
// tuple. Trending listings are deliberately not memoized; they change too
// fast for a day-scale TTL to make sense.
type CachedPlatform struct {
	next  Platform
	cache *CacheService
}

func NewCachedPlatform(next Platform, cache *CacheService) *CachedPlatform {
	return &CachedPlatform{next: next, cache: cache}
}

func (p *CachedPlatform) SearchIDs(ctx context.Context, query, publishedAfter string, maxResults int, regionCode string) ([]string, error) {
	key := cachekey.ForArgs("search", query, publishedAfter, strconv.Itoa(maxResults), regionCode)

	var ids []string
	if p.cache.Get(ctx, key, &ids) {
		return ids, nil
	}

	ids, err := p.next.SearchIDs(ctx, query, publishedAfter, maxResults, regionCode)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, ids)
	return ids, nil
}

func (p *CachedPlatform) VideosByID(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	key := cachekey.ForArgs("videos", ids...)

	var records []model.VideoRecord
	if p.cache.Get(ctx, key, &records) {
		return records, nil
	}

	records, err := p.next.VideosByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, records)
	return records, nil
}

func (p *CachedPlatform) Trending(ctx context.Context, regionCode string, maxResults int) ([]model.VideoRecord, error) {
	return p.next.Trending(ctx, regionCode, maxResults)
}

func (p *CachedPlatform) ChannelsByID(ctx context.Context, ids []string) ([]model.ChannelRecord, error) {
	key := cachekey.ForArgs("channels", ids...)

	var records []model.ChannelRecord
	if p.cache.Get(ctx, key, &records) {
		return records, nil
	}

	records, err := p.next.ChannelsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, records)
	return records, nil
}
