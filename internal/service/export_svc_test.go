package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

func TestWriteCSV(t *testing.T) {
	likes := int64(678)
	records := []model.VideoRecord{
		{
			Title:           "First Video",
			ChannelName:     "Alpha",
			PublishedAt:     time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC),
			ViewCount:       12345,
			LikeCount:       &likes,
			DurationDisplay: "18:57",
			URL:             "https://www.youtube.com/watch?v=v1",
		},
		{
			Title:       "Hidden, Ratings",
			ChannelName: "Beta",
			PublishedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
			ViewCount:   10,
			LikeCount:   nil,
			URL:         "https://www.youtube.com/watch?v=v2",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	wantHeader := []string{"title", "channel", "publishedAt", "views", "likes", "duration", "url"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	if rows[1][3] != "12345" || rows[1][4] != "678" {
		t.Errorf("row 1 counts = %q/%q, want 12345/678", rows[1][3], rows[1][4])
	}
	if rows[1][2] != "2025-05-01T10:30:00Z" {
		t.Errorf("row 1 publishedAt = %q", rows[1][2])
	}
	// Unknown likes export as an empty cell, not "0".
	if rows[2][4] != "" {
		t.Errorf("hidden likes cell = %q, want empty", rows[2][4])
	}
	// A title containing a comma survives the round trip.
	if rows[2][0] != "Hidden, Ratings" {
		t.Errorf("quoted title = %q", rows[2][0])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty export should still write the header row, got %d rows", len(rows))
	}
}
