package service

import (
	"context"
	"log"
	"time"

	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

// QuotaWorker is a periodic background job that rolls the upstream quota
// counter over at the UTC day boundary (the upstream resets allowances
// daily) and logs current usage.
type QuotaWorker struct {
	quota    *youtube.QuotaTracker
	interval time.Duration
	stopCh   chan struct{}
}

// NewQuotaWorker creates a worker that ticks every interval.
func NewQuotaWorker(quota *youtube.QuotaTracker, interval time.Duration) *QuotaWorker {
	return &QuotaWorker{
		quota:    quota,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic rollover loop. It runs one tick immediately,
// then every interval.
func (w *QuotaWorker) Start(ctx context.Context) {
	log.Printf("quota-worker: starting (interval=%s)", w.interval)

	w.tick()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick()
		case <-ctx.Done():
			log.Println("quota-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("quota-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *QuotaWorker) Stop() {
	close(w.stopCh)
}

func (w *QuotaWorker) tick() {
	if w.quota.Rollover(time.Now()) {
		log.Println("quota-worker: daily quota counter reset")
		return
	}
	used := w.quota.Used()
	limit := w.quota.DailyLimit()
	log.Printf("quota-worker: %d/%d units used (%.1f%%)",
		used, limit, float64(used)/float64(limit)*100)
}
