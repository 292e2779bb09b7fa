package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

func int64Ptr(n int64) *int64 { return &n }

func TestJoinAndFilter_RegionFailClosed(t *testing.T) {
	fake := newFakePlatform()
	fake.channels["UCmatch"] = model.ChannelRecord{ChannelID: "UCmatch", Country: "de"}
	fake.channels["UCother"] = model.ChannelRecord{ChannelID: "UCother", Country: "US"}
	fake.channels["UCblank"] = model.ChannelRecord{ChannelID: "UCblank"}
	// UCmissing is not returned by the upstream at all.
	svc := NewFilterService(fake)

	records := []model.VideoRecord{
		{ID: "v1", ChannelID: "UCmatch"},
		{ID: "v2", ChannelID: "UCother"},
		{ID: "v3", ChannelID: "UCblank"},
		{ID: "v4", ChannelID: "UCmissing"},
	}

	kept, report, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{
		StrictRegion: true, Region: "DE",
	})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}

	if len(kept) != 1 || kept[0].ID != "v1" {
		t.Fatalf("kept = %+v, want only the case-insensitive region match", kept)
	}
	if report.RemovedByRegion != 3 {
		t.Errorf("RemovedByRegion = %d, want 3", report.RemovedByRegion)
	}
	if report.Remaining != 1 {
		t.Errorf("Remaining = %d, want 1", report.Remaining)
	}
}

func TestJoinAndFilter_SubscriberFailOpen(t *testing.T) {
	fake := newFakePlatform()
	fake.channels["UCbig"] = model.ChannelRecord{ChannelID: "UCbig", SubscriberCount: int64Ptr(5000)}
	fake.channels["UCsmall"] = model.ChannelRecord{ChannelID: "UCsmall", SubscriberCount: int64Ptr(500)}
	fake.channels["UChidden"] = model.ChannelRecord{ChannelID: "UChidden", SubscriberCount: nil}
	svc := NewFilterService(fake)

	records := []model.VideoRecord{
		{ID: "v1", ChannelID: "UCbig"},
		{ID: "v2", ChannelID: "UCsmall"},
		{ID: "v3", ChannelID: "UChidden"},
		{ID: "v4", ChannelID: "UCmissing"},
	}

	kept, report, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{
		MinSubscribers: 1000,
	})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}

	// Only the known-below-threshold channel is dropped; hidden counts and
	// unjoined channels are kept.
	if len(kept) != 3 {
		t.Fatalf("kept %d records, want 3: %+v", len(kept), kept)
	}
	for _, r := range kept {
		if r.ID == "v2" {
			t.Error("known sub-threshold channel must be dropped")
		}
	}
	if report.RemovedBySubscribers != 1 {
		t.Errorf("RemovedBySubscribers = %d, want 1", report.RemovedBySubscribers)
	}
}

func TestJoinAndFilter_SubscriberThresholdBoundary(t *testing.T) {
	fake := newFakePlatform()
	fake.channels["UC500"] = model.ChannelRecord{ChannelID: "UC500", SubscriberCount: int64Ptr(500)}
	svc := NewFilterService(fake)
	records := []model.VideoRecord{{ID: "v1", ChannelID: "UC500"}}

	kept, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{MinSubscribers: 100})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 1 {
		t.Error("500 subscribers must be kept at threshold 100")
	}

	kept, _, err = svc.JoinAndFilter(context.Background(), records, model.FilterOptions{MinSubscribers: 1000})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 0 {
		t.Error("500 subscribers must be dropped at threshold 1000")
	}
}

func TestJoinAndFilter_PolicyAsymmetry(t *testing.T) {
	// The same unjoined-channel record is dropped by the region filter but
	// kept by the subscriber filter. This asymmetry is intentional.
	fake := newFakePlatform()
	svc := NewFilterService(fake)
	records := []model.VideoRecord{{ID: "v1", ChannelID: "UCmissing"}}

	kept, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{
		StrictRegion: true, Region: "US",
	})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 0 {
		t.Error("region filter must drop an unjoined channel (fail-closed)")
	}

	kept, _, err = svc.JoinAndFilter(context.Background(), records, model.FilterOptions{
		MinSubscribers: 1000,
	})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 1 {
		t.Error("subscriber filter must keep an unjoined channel (fail-open)")
	}
}

func TestJoinAndFilter_MinViews(t *testing.T) {
	svc := NewFilterService(newFakePlatform())
	records := []model.VideoRecord{
		{ID: "v1", ViewCount: 50},
		{ID: "v2", ViewCount: 5000},
	}

	kept, report, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{MinViews: 100})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 1 || kept[0].ID != "v2" {
		t.Errorf("kept = %+v, want only v2", kept)
	}
	if report.RemovedByMinViews != 1 {
		t.Errorf("RemovedByMinViews = %d, want 1", report.RemovedByMinViews)
	}
}

func TestJoinAndFilter_NoFiltersNoJoin(t *testing.T) {
	fake := newFakePlatform()
	svc := NewFilterService(fake)
	records := []model.VideoRecord{{ID: "v1", ChannelID: "UCa"}}

	kept, report, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}
	if len(kept) != 1 || report.Remaining != 1 {
		t.Errorf("no filters should keep everything, got %+v", report)
	}
	if len(fake.channelBatches) != 0 {
		t.Error("no channel fetch should happen when no joined filter is enabled")
	}
}

func TestJoinChannels_OncePerUniqueChannel(t *testing.T) {
	fake := newFakePlatform()
	fake.channels["UCa"] = model.ChannelRecord{ChannelID: "UCa", Country: "US"}
	svc := NewFilterService(fake)

	// Three records referencing the same channel.
	records := []model.VideoRecord{
		{ID: "v1", ChannelID: "UCa"},
		{ID: "v2", ChannelID: "UCa"},
		{ID: "v3", ChannelID: "UCa"},
	}

	_, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{
		StrictRegion: true, Region: "US",
	})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}

	total := 0
	for _, batch := range fake.channelBatches {
		total += len(batch)
	}
	if total != 1 {
		t.Errorf("fetched %d channel ids, want 1 (once per unique channel)", total)
	}
}

func TestJoinChannels_BatchesOfFifty(t *testing.T) {
	fake := newFakePlatform()
	svc := NewFilterService(fake)

	ids := manyIDs(120)
	records := make([]model.VideoRecord, 120)
	for i := range records {
		records[i] = model.VideoRecord{ID: ids[i], ChannelID: "UC" + ids[i]}
	}

	_, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{MinSubscribers: 1})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}

	if len(fake.channelBatches) != 3 {
		t.Fatalf("issued %d channel batches, want 3", len(fake.channelBatches))
	}
	wantSizes := []int{50, 50, 20}
	for i, batch := range fake.channelBatches {
		if len(batch) != wantSizes[i] {
			t.Errorf("batch %d size = %d, want %d", i, len(batch), wantSizes[i])
		}
	}
}

func TestJoinChannels_SafetyCap(t *testing.T) {
	fake := newFakePlatform()
	svc := NewFilterService(fake)

	// 600 unique channels: the join must stop at the cap.
	records := make([]model.VideoRecord, 600)
	for i := range records {
		records[i] = model.VideoRecord{
			ID:        fmt.Sprintf("v%03d", i),
			ChannelID: fmt.Sprintf("UC%03d", i),
		}
	}

	kept, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{MinSubscribers: 1})
	if err != nil {
		t.Fatalf("JoinAndFilter: %v", err)
	}

	total := 0
	for _, batch := range fake.channelBatches {
		total += len(batch)
	}
	if total != MaxJoinedChannels {
		t.Errorf("fetched %d channel ids, want %d (safety cap)", total, MaxJoinedChannels)
	}
	// Unjoined channels have unknown subscriber counts: fail-open keeps them.
	if len(kept) != 600 {
		t.Errorf("kept %d records, want 600", len(kept))
	}
}

func TestJoinAndFilter_ChannelFetchFailure(t *testing.T) {
	fake := newFakePlatform()
	fake.channelsErr = errors.New("500 backend error")
	svc := NewFilterService(fake)
	records := []model.VideoRecord{{ID: "v1", ChannelID: "UCa"}}

	_, _, err := svc.JoinAndFilter(context.Background(), records, model.FilterOptions{StrictRegion: true, Region: "US"})
	if err == nil {
		t.Fatal("channel batch failure must propagate")
	}
}
