package service

import (
	"testing"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

func TestGroupByChannel(t *testing.T) {
	records := []model.VideoRecord{
		{ID: "v1", ChannelID: "UCa", ChannelName: "Alpha", Title: "a1", ViewCount: 100},
		{ID: "v2", ChannelID: "UCb", ChannelName: "Beta", Title: "b1", ViewCount: 900, ThumbnailURL: "thumb-b"},
		{ID: "v3", ChannelID: "UCa", ChannelName: "Alpha", Title: "a2", ViewCount: 300},
		{ID: "v4", ChannelID: "UCa", ChannelName: "Alpha", Title: "a3", ViewCount: 200, ThumbnailURL: "thumb-a"},
		{ID: "v5", ChannelID: "UCa", ChannelName: "Alpha", Title: "a4", ViewCount: 50},
	}

	groups := GroupByChannel(records)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Beta (900) outranks Alpha (650) on total views.
	if groups[0].ChannelID != "UCb" {
		t.Errorf("first group = %q, want UCb", groups[0].ChannelID)
	}

	alpha := groups[1]
	if alpha.TotalViews != 650 {
		t.Errorf("Alpha TotalViews = %d, want 650", alpha.TotalViews)
	}
	if alpha.VideoCount != 4 {
		t.Errorf("Alpha VideoCount = %d, want 4", alpha.VideoCount)
	}
	if alpha.AvgViews != 162.5 {
		t.Errorf("Alpha AvgViews = %v, want 162.5", alpha.AvgViews)
	}
	if len(alpha.SampleTitles) != 3 {
		t.Errorf("Alpha SampleTitles = %v, want first 3 only", alpha.SampleTitles)
	}
	if alpha.SampleThumbnail != "thumb-a" {
		t.Errorf("Alpha SampleThumbnail = %q, want first non-empty", alpha.SampleThumbnail)
	}
}

func TestGroupByChannel_Empty(t *testing.T) {
	if groups := GroupByChannel(nil); len(groups) != 0 {
		t.Errorf("empty input should yield no groups, got %v", groups)
	}
}
