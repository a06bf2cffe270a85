package expiry

import (
	"sync"
	"time"
)

// Registry owns one countdown per tracked document id. Tracking an id again
// replaces its countdown; untracking stops it.
type Registry struct {
	interval time.Duration
	now      func() time.Time
	onExpire func(id string)

	mu      sync.Mutex
	closed  bool
	entries map[string]*tracked
}

type tracked struct {
	cd *Countdown
}

// NewRegistry builds a registry. onExpire runs once per expired countdown.
func NewRegistry(interval time.Duration, now func() time.Time, onExpire func(id string)) *Registry {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		interval: interval,
		now:      now,
		onExpire: onExpire,
		entries:  make(map[string]*tracked),
	}
}

// Track starts (or restarts) the countdown for id.
func (r *Registry) Track(id string, deadline time.Time) {
	e := &tracked{}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	old := r.entries[id]
	r.entries[id] = e
	e.cd = Start(deadline,
		WithInterval(r.interval),
		WithNow(r.now),
		OnExpire(func() { r.expire(id, e) }),
	)
	r.mu.Unlock()

	if old != nil {
		old.cd.Stop()
	}
}

// Untrack stops the countdown for id, if any.
func (r *Registry) Untrack(id string) {
	r.mu.Lock()
	e := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if e != nil {
		e.cd.Stop()
	}
}

// Tracked reports whether id has a live countdown.
func (r *Registry) Tracked(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Len is the number of live countdowns.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops every countdown. Track is a no-op afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	entries := r.entries
	r.entries = make(map[string]*tracked)
	r.mu.Unlock()

	for _, e := range entries {
		e.cd.Stop()
	}
}

func (r *Registry) expire(id string, e *tracked) {
	r.mu.Lock()
	if r.entries[id] == e {
		delete(r.entries, id)
	}
	cb := r.onExpire
	r.mu.Unlock()

	if cb != nil {
		cb(id)
	}
}
