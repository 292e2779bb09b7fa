package youtube

import (
	"sync"
	"time"
)

// Upstream quota unit costs per operation (YouTube Data API v3 pricing).
const (
	CostSearch   = 100
	CostVideos   = 1
	CostChannels = 1
)

// QuotaTracker counts quota units spent against the daily allowance. The
// upstream resets allowances once per day; Rollover clears the counter when
// the UTC date changes.
type QuotaTracker struct {
	mu         sync.Mutex
	dailyLimit int64
	used       int64
	day        string // UTC date the counter belongs to
}

func NewQuotaTracker(dailyLimit int) *QuotaTracker {
	if dailyLimit <= 0 {
		dailyLimit = 10000 // upstream default allowance
	}
	return &QuotaTracker{
		dailyLimit: int64(dailyLimit),
		day:        utcDay(time.Now()),
	}
}

// Record adds cost units to today's usage.
func (q *QuotaTracker) Record(cost int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rolloverLocked(time.Now())
	q.used += int64(cost)
}

// Used returns the units spent today.
func (q *QuotaTracker) Used() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rolloverLocked(time.Now())
	return q.used
}

// Remaining returns the units left before the daily limit.
func (q *QuotaTracker) Remaining() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rolloverLocked(time.Now())
	r := q.dailyLimit - q.used
	if r < 0 {
		return 0
	}
	return r
}

// DailyLimit returns the configured allowance.
func (q *QuotaTracker) DailyLimit() int64 {
	return q.dailyLimit
}

// Rollover resets the counter if the UTC date has changed since the last
// recorded call. Returns true when a reset happened.
func (q *QuotaTracker) Rollover(now time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rolloverLocked(now)
}

func (q *QuotaTracker) rolloverLocked(now time.Time) bool {
	day := utcDay(now)
	if day == q.day {
		return false
	}
	q.day = day
	q.used = 0
	return true
}

func utcDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
