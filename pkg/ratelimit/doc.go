// Package ratelimit implements the bounded 60-second timestamp window used
// to enforce a per-provider-instance requests/minute quota.
//
//	w := ratelimit.NewWindow(20) // 20 requests / 60s
//	if w.HasCapacity(time.Now()) {
//	    w.Record(time.Now())
//	}
package ratelimit
