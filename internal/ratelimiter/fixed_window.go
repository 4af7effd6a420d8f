// Package ratelimiter bounds how many requests a single client may post to
// the HTTP transport inside a fixed time window.
package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerWindow int
	Window            time.Duration
	Enabled           bool
}

// FixedWindow counts requests per client key and resets every window. Counts
// for idle clients are dropped on the next tick.
type FixedWindow struct {
	mu      sync.Mutex
	counts  map[string]int
	limit   int
	window  time.Duration
	started time.Time
	now     func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		counts: make(map[string]int),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether the client identified by key may proceed. When the
// limit is hit it returns the time until the current window resets.
func (fw *FixedWindow) Allow(key string) (bool, time.Duration) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	if fw.started.IsZero() || now.Sub(fw.started) >= fw.window {
		fw.counts = make(map[string]int)
		fw.started = now
	}

	if fw.counts[key] >= fw.limit {
		return false, fw.window - now.Sub(fw.started)
	}
	fw.counts[key]++
	return true, 0
}
