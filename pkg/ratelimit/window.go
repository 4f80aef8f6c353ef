package ratelimit

import (
	"sync"
	"time"
)

// Window is a sliding 60-second window of request timestamps bounded to a
// fixed capacity. A slot is free when the window is not yet full, or when
// the oldest timestamp in it has aged past 60 seconds.
//
// Unlike a bucketed counter, Window tracks individual send timestamps so
// capacity reported at any instant reflects exactly which requests are
// still "in window," which the load balancer's boundary tests rely on.
type Window struct {
	mu       sync.Mutex
	capacity int
	entries  []time.Time
}

// NewWindow creates a Window with the given capacity (the configured
// rate_limit). A non-positive capacity is treated as 1.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = 1
	}
	return &Window{capacity: capacity}
}

// HasCapacity reports whether a slot is available at now without consuming
// one.
func (w *Window) HasCapacity(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pruneLocked(now)
	if len(w.entries) < w.capacity {
		return true
	}
	return now.Sub(w.entries[0]) > 60*time.Second
}

// Record enqueues now as a send timestamp, pruning aged entries first and
// evicting the oldest entry if the window is still full after pruning
// (i.e. the caller dispatched right as a slot was about to free).
func (w *Window) Record(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pruneLocked(now)
	if len(w.entries) >= w.capacity {
		w.entries = w.entries[1:]
	}
	w.entries = append(w.entries, now)
}

// Len reports the current window length, for diagnostics and tests.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (w *Window) pruneLocked(now time.Time) {
	cut := 0
	for cut < len(w.entries) && now.Sub(w.entries[cut]) > 60*time.Second {
		cut++
	}
	if cut > 0 {
		w.entries = append(w.entries[:0], w.entries[cut:]...)
	}
}
