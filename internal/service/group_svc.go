package service

import (
	"sort"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

const maxSampleTitles = 3

// GroupByChannel rolls the record list up to one entry per channel: total
// and average views, up to three sample titles, and the first available
// thumbnail. Groups are ordered by total views descending.
func GroupByChannel(records []model.VideoRecord) []model.ChannelGroup {
	index := make(map[string]int, len(records))
	var groups []model.ChannelGroup

	for _, r := range records {
		i, ok := index[r.ChannelID]
		if !ok {
			i = len(groups)
			index[r.ChannelID] = i
			groups = append(groups, model.ChannelGroup{
				ChannelName: r.ChannelName,
				ChannelID:   r.ChannelID,
			})
		}
		g := &groups[i]
		g.VideoCount++
		g.TotalViews += r.ViewCount
		if len(g.SampleTitles) < maxSampleTitles {
			g.SampleTitles = append(g.SampleTitles, r.Title)
		}
		if g.SampleThumbnail == "" && r.ThumbnailURL != "" {
			g.SampleThumbnail = r.ThumbnailURL
		}
	}

	for i := range groups {
		groups[i].AvgViews = float64(groups[i].TotalViews) / float64(groups[i].VideoCount)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalViews > groups[j].TotalViews
	})
	return groups
}
