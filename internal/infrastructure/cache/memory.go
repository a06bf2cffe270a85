package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fieldservice_billing/internal/usecase/interfaces"
)

type ledgerEntry struct {
	paymentRef string
	expiresAt  time.Time
}

// InMemoryChargeLedger keeps charge keys in process. Suitable for a single
// instance and tests.
type InMemoryChargeLedger struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]ledgerEntry
}

var _ interfaces.IChargeLedger = (*InMemoryChargeLedger)(nil)

func NewInMemoryChargeLedger() *InMemoryChargeLedger {
	return &InMemoryChargeLedger{now: time.Now, entries: make(map[string]ledgerEntry)}
}

func (l *InMemoryChargeLedger) live(key string) (ledgerEntry, bool) {
	e, ok := l.entries[key]
	if !ok {
		return ledgerEntry{}, false
	}
	if !l.now().Before(e.expiresAt) {
		delete(l.entries, key)
		return ledgerEntry{}, false
	}
	return e, true
}

func (l *InMemoryChargeLedger) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.live(key); ok {
		return false, nil
	}
	l.entries[key] = ledgerEntry{expiresAt: l.now().Add(ttl)}
	return true, nil
}

func (l *InMemoryChargeLedger) Complete(_ context.Context, key, paymentRef string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = ledgerEntry{paymentRef: paymentRef, expiresAt: l.now().Add(ttl)}
	return nil
}

func (l *InMemoryChargeLedger) Lookup(_ context.Context, key string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.live(key)
	if !ok || e.paymentRef == "" {
		return "", false, nil
	}
	return e.paymentRef, true, nil
}

// Release drops an unfinished reservation. Completed charges are kept.
func (l *InMemoryChargeLedger) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok && e.paymentRef == "" {
		delete(l.entries, key)
	}
	return nil
}

func (l *InMemoryChargeLedger) Forget(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
	return nil
}

type docEntry struct {
	raw       []byte
	expiresAt time.Time
}

// InMemoryDocumentCache stores JSON snapshots so callers never share pointers
// with the cache.
type InMemoryDocumentCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]docEntry
}

var _ interfaces.IDocumentCache = (*InMemoryDocumentCache)(nil)

func NewInMemoryDocumentCache(ttl time.Duration) *InMemoryDocumentCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InMemoryDocumentCache{ttl: ttl, now: time.Now, entries: make(map[string]docEntry)}
}

func (c *InMemoryDocumentCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *InMemoryDocumentCache) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = docEntry{raw: raw, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *InMemoryDocumentCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	return nil
}

// NopDocumentCache disables caching.
type NopDocumentCache struct{}

var _ interfaces.IDocumentCache = NopDocumentCache{}

func (NopDocumentCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopDocumentCache) Set(context.Context, string, any) error         { return nil }
func (NopDocumentCache) Delete(context.Context, ...string) error        { return nil }
