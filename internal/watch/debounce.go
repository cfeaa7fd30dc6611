package watch

import (
	"sync"
	"time"
)

// DefaultDebounce is the minimum time between accepted events for one path.
const DefaultDebounce = 2 * time.Second

// Debouncer suppresses repeated events for the same path inside a window.
// Entries are never removed; the map is bounded by the number of distinct
// files seen.
type Debouncer struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window < 0 {
		window = 0
	}
	return &Debouncer{
		window: window,
		last:   make(map[string]time.Time),
	}
}

// ShouldProcess reports whether an event for path at now should run, and if
// so records now as the path's last accepted time. The lock covers only the
// compare-and-update.
func (d *Debouncer) ShouldProcess(path string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.last[path]; ok && now.Sub(last) < d.window {
		return false
	}
	d.last[path] = now
	return true
}
