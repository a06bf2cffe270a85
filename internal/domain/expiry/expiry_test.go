package expiry

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNow struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeNow) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func TestIsExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsExpired(deadline, deadline.Add(-time.Nanosecond)))
	assert.True(t, IsExpired(deadline, deadline))
	assert.True(t, IsExpired(deadline, deadline.Add(time.Hour)))
	assert.False(t, IsExpired(time.Time{}, deadline))
}

func TestRemaining(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 90*time.Second, Remaining(deadline, deadline.Add(-90*time.Second)))
	assert.Equal(t, time.Duration(0), Remaining(deadline, deadline.Add(time.Minute)))
	assert.Equal(t, time.Duration(0), Remaining(time.Time{}, deadline))
}

func TestCountdown_FiresOnceWhenDeadlinePasses(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeNow{now: start}
	var fired int32

	cd := Start(start.Add(time.Minute),
		WithInterval(5*time.Millisecond),
		WithNow(clock.Now),
		OnExpire(func() { atomic.AddInt32(&fired, 1) }),
	)
	defer cd.Stop()

	select {
	case <-cd.Expired():
		t.Fatal("expired before deadline")
	case <-time.After(30 * time.Millisecond):
	}
	assert.Equal(t, time.Minute, cd.Remaining())

	clock.Set(start.Add(2 * time.Minute))
	select {
	case <-cd.Expired():
	case <-time.After(time.Second):
		t.Fatal("countdown did not expire")
	}

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// moving the clock back never reopens the channel
	clock.Set(start)
	select {
	case <-cd.Expired():
	default:
		t.Fatal("expired channel reopened")
	}
}

func TestCountdown_AlreadyExpiredFiresImmediately(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cd := Start(now.Add(-time.Second), WithNow(func() time.Time { return now }), WithInterval(time.Hour))
	defer cd.Stop()

	select {
	case <-cd.Expired():
	case <-time.After(time.Second):
		t.Fatal("countdown did not expire")
	}
}

func TestCountdown_StopPreventsFurtherTicks(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeNow{now: start}
	var fired int32

	cd := Start(start.Add(time.Minute),
		WithInterval(5*time.Millisecond),
		WithNow(clock.Now),
		OnExpire(func() { atomic.AddInt32(&fired, 1) }),
	)
	cd.Stop()
	cd.Stop()

	clock.Set(start.Add(time.Hour))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestCountdown_ResetStartsFreshRun(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeNow{now: start}

	cd := Start(start.Add(-time.Second), WithInterval(5*time.Millisecond), WithNow(clock.Now))
	defer cd.Stop()
	<-cd.Expired()

	cd.Reset(start.Add(time.Hour))
	assert.Equal(t, start.Add(time.Hour), cd.Deadline())
	select {
	case <-cd.Expired():
		t.Fatal("reset countdown expired early")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRegistry_TrackUntrackAndExpire(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeNow{now: start}
	expired := make(chan string, 4)

	r := NewRegistry(5*time.Millisecond, clock.Now, func(id string) { expired <- id })
	defer r.Close()

	r.Track("q-1", start.Add(time.Minute))
	r.Track("q-2", start.Add(time.Minute))
	r.Track("q-2", start.Add(2*time.Minute))
	assert.Equal(t, 2, r.Len())

	r.Untrack("q-2")
	assert.False(t, r.Tracked("q-2"))

	clock.Set(start.Add(time.Hour))
	select {
	case id := <-expired:
		assert.Equal(t, "q-1", id)
	case <-time.After(time.Second):
		t.Fatal("registry countdown did not expire")
	}

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	select {
	case id := <-expired:
		t.Fatalf("unexpected expiry for %s", id)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestRegistry_CloseStopsEverything(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeNow{now: start}
	var fired int32

	r := NewRegistry(5*time.Millisecond, clock.Now, func(string) { atomic.AddInt32(&fired, 1) })
	r.Track("q-1", start.Add(time.Minute))
	r.Close()
	r.Track("q-2", start.Add(time.Minute))

	clock.Set(start.Add(time.Hour))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.Equal(t, 0, r.Len())
}
