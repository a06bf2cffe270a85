package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/infrastructure/logger"
	"fieldservice_billing/internal/infrastructure/metrics"
	"fieldservice_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// commitAttempts bounds the re-read/commit loop used where a side effect has
// already happened upstream and the local write must eventually land.
const commitAttempts = 3

// invalidations counts deletes per key stripe. A cached read that saw its
// stripe move while loading does not keep what it loaded.
var invalidations [64]atomic.Uint64

func generation(key string) *atomic.Uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &invalidations[h.Sum32()%uint32(len(invalidations))]
}

// Option configures the ambient collaborators of a use case.
type Option func(*options)

type options struct {
	cache   interfaces.IDocumentCache
	metrics interfaces.IMetrics
	log     *zap.Logger
	now     func() time.Time
}

func WithCache(c interfaces.IDocumentCache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

func WithMetrics(m interfaces.IMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock swaps the time source; timestamps are stored in UTC.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		cache:   cache.NopDocumentCache{},
		metrics: metrics.Nop{},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) clock() time.Time {
	return o.now().UTC()
}

func (o options) logger(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, o.log)
}

// invalidate drops every cached read made stale by m. It runs once per
// committed mutation; a cache failure is logged, the commit stands.
func (o options) invalidate(ctx context.Context, m cache.Mutation, refs cache.Refs) {
	keys := cache.Keys(m, refs)
	if len(keys) == 0 {
		return
	}
	// Bump before deleting so a concurrent cached() either sees the bump
	// or has its write removed by the delete.
	for _, k := range keys {
		generation(k).Add(1)
	}
	if err := o.cache.Delete(ctx, keys...); err != nil {
		o.logger(ctx).Warn("[cache][usecase] invalidation failed",
			zap.String("mutation", string(m)),
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}

func (o options) observe(document, action string, err error) {
	o.metrics.Transition(document, action, outcome(err))
}

// cached reads key through the document cache. load returns the zero value
// for a missing record, which is never cached. A load that raced an
// invalidation in this process is returned but not written back; across
// instances the window is bounded by the cache TTL.
func cached[T any](ctx context.Context, o options, key string, load func() (T, error), present func(T) bool) (T, error) {
	var v T
	hit, err := o.cache.Get(ctx, key, &v)
	if err != nil {
		o.logger(ctx).Warn("[cache][usecase] read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return v, nil
	}

	gen := generation(key)
	seen := gen.Load()
	v, err = load()
	if err != nil {
		return v, err
	}
	if !present(v) || gen.Load() != seen {
		return v, nil
	}
	if err := o.cache.Set(ctx, key, v); err != nil {
		o.logger(ctx).Warn("[cache][usecase] write failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if gen.Load() != seen {
		if err := o.cache.Delete(ctx, key); err != nil {
			o.logger(ctx).Warn("[cache][usecase] stale write not removed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, shared.ErrConflict), errors.Is(err, shared.ErrAlreadyExists):
		return metrics.OutcomeConflict
	case errors.Is(err, shared.ErrUpstreamFailure):
		return metrics.OutcomeUpstream
	case errors.Is(err, shared.ErrValidationFailed),
		errors.Is(err, shared.ErrInvalidTransition),
		errors.Is(err, shared.ErrExpired),
		errors.Is(err, shared.ErrLocked),
		errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrInvalidInput):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, id)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", shared.ErrInvalidInput, msg)
}

func staleVersion(kind, id string, seen, current int) error {
	return fmt.Errorf("%w: %s %s is at version %d, caller saw %d", shared.ErrConflict, kind, id, current, seen)
}

func alreadyInvoiced(quoteID, invoiceID string) error {
	return fmt.Errorf("%w: quote %s already has invoice %s", shared.ErrAlreadyExists, quoteID, invoiceID)
}
