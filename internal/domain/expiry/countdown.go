package expiry

import (
	"sync"
	"time"
)

// DefaultInterval is the re-evaluation period of a live countdown.
const DefaultInterval = time.Second

// Option configures a Countdown.
type Option func(*Countdown)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithNow swaps the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Countdown) {
		if now != nil {
			c.now = now
		}
	}
}

// OnExpire registers a callback run once, from the countdown goroutine, when
// the deadline is reached.
func OnExpire(fn func()) Option {
	return func(c *Countdown) {
		c.onExpire = fn
	}
}

// Countdown re-evaluates IsExpired on a fixed interval. Its Expired channel is
// closed exactly once per run and never reopened; Reset starts a new run with
// a fresh channel.
type Countdown struct {
	interval time.Duration
	now      func() time.Time
	onExpire func()

	mu       sync.Mutex
	deadline time.Time
	expired  chan struct{}
	stop     chan struct{}
	done     chan struct{}
}

// Start launches a countdown for deadline.
func Start(deadline time.Time, opts ...Option) *Countdown {
	c := &Countdown{
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mu.Lock()
	c.launch(deadline)
	c.mu.Unlock()
	return c
}

// Expired is closed when the current run observes the deadline.
func (c *Countdown) Expired() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Deadline returns the deadline of the current run.
func (c *Countdown) Deadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}

// Remaining is the time left in the current run.
func (c *Countdown) Remaining() time.Duration {
	return Remaining(c.Deadline(), c.now())
}

// Reset cancels the current run and starts a new one for deadline.
func (c *Countdown) Reset(deadline time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.halt()
	c.launch(deadline)
}

// Stop cancels the countdown. No tick runs after Stop returns. Safe to call
// more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.halt()
}

// launch must be called with mu held.
func (c *Countdown) launch(deadline time.Time) {
	c.deadline = deadline
	c.expired = make(chan struct{})
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(deadline, c.expired, c.stop, c.done)
}

// halt must be called with mu held.
func (c *Countdown) halt() {
	if c.stop == nil {
		return
	}
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	<-c.done
}

func (c *Countdown) run(deadline time.Time, expired, stop, done chan struct{}) {
	defer close(done)
	if c.fire(deadline, expired) {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.fire(deadline, expired) {
				return
			}
		}
	}
}

func (c *Countdown) fire(deadline time.Time, expired chan struct{}) bool {
	if !IsExpired(deadline, c.now()) {
		return false
	}
	close(expired)
	if c.onExpire != nil {
		c.onExpire()
	}
	return true
}
