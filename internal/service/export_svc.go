package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
)

// csvHeader is the fixed export column set.
var csvHeader = []string{"title", "channel", "publishedAt", "views", "likes", "duration", "url"}

// WriteCSV streams the record list as CSV. An unknown like count exports as
// an empty cell, not "0".
func WriteCSV(w io.Writer, records []model.VideoRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		published := r.PublishedAtRaw
		if !r.PublishedAt.IsZero() {
			published = r.PublishedAt.Format(time.RFC3339)
		}
		likes := ""
		if r.LikeCount != nil {
			likes = strconv.FormatInt(*r.LikeCount, 10)
		}

		row := []string{
			r.Title,
			r.ChannelName,
			published,
			strconv.FormatInt(r.ViewCount, 10),
			likes,
			r.DurationDisplay,
			r.URL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
