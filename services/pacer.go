package services

import (
	"sync"
	"time"
)

// Pacer spaces out upstream provider calls to stay under the stricter
// provider's per-minute request limit. The gate sits on the fetch path only,
// so cache hits are never delayed.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	sleep    func(time.Duration)
}

// NewPacer creates a pacer enforcing the given minimum interval between
// fetches. A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		sleep:    time.Sleep,
	}
}

// Wait blocks until the caller may perform an upstream fetch, claiming the
// next slot before sleeping so concurrent callers queue up behind each other.
func (p *Pacer) Wait() {
	if p.interval <= 0 {
		return
	}

	p.mu.Lock()
	now := time.Now()
	wait := p.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	p.next = now.Add(wait + p.interval)
	p.mu.Unlock()

	if wait > 0 {
		p.sleep(wait)
	}
}
