package runner

import (
	"sync"
	"time"
)

// Pacing holds the inter-word delay. It is the one knob the config
// watcher may retune while a run is in flight, so reads and writes are
// guarded: the watcher goroutine updates it, the run loop consults it
// before every word.
type Pacing struct {
	mu   sync.RWMutex
	pace time.Duration
}

// NewPacing creates a Pacing with the given initial delay.
func NewPacing(pace time.Duration) *Pacing {
	return &Pacing{pace: pace}
}

// Pace returns the current inter-word delay.
func (p *Pacing) Pace() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pace
}

// SetPace replaces the inter-word delay.
func (p *Pacing) SetPace(d time.Duration) {
	if d < 0 {
		return
	}
	p.mu.Lock()
	p.pace = d
	p.mu.Unlock()
}
