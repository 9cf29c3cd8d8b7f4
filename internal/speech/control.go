package speech

import (
	"sync/atomic"
	"time"
)

// controls holds the flags shared between the control surface and the two
// worker goroutines. Both flags are single-writer (the control side) and
// multi-reader (the workers), so plain atomics suffice; no compound invariant
// spans them.
type controls struct {
	paused   atomic.Bool
	stopping atomic.Bool
}

// waitWhilePaused sleeps in short intervals while the pipeline is paused.
// It returns false as soon as a stop is observed, including a stop that
// arrives mid-pause, so callers exit instead of looping forever.
func (c *controls) waitWhilePaused(interval time.Duration) bool {
	for c.paused.Load() {
		if c.stopping.Load() {
			return false
		}
		time.Sleep(interval)
	}
	return !c.stopping.Load()
}
