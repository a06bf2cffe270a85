package interfaces

import (
	"context"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/signature"
)

// INotifier tells the counterparty a quote is waiting for a decision.
type INotifier interface {
	QuoteSent(ctx context.Context, q entities.Quote, c entities.Client) error
}

// ISignatureStore persists a signature artifact and returns its reference.
type ISignatureStore interface {
	Put(ctx context.Context, quoteID string, a signature.Artifact) (string, error)
}

// IChargeLedger remembers which invoice charges are in flight or done, keyed by
// the invoice's charge key.
//
// Reserve returns false when the key is already held. Complete stores the
// confirmed payment reference; Lookup returns it. Release drops a reservation
// whose charge failed so the caller may retry. Forget drops the key in any
// state, once a confirmed charge has been refunded.
type IChargeLedger interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Complete(ctx context.Context, key, paymentRef string, ttl time.Duration) error
	Lookup(ctx context.Context, key string) (string, bool, error)
	Release(ctx context.Context, key string) error
	Forget(ctx context.Context, key string) error
}

// IDocumentCache is a read-through cache. Writers never read from it.
type IDocumentCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

// IMetrics counts lifecycle outcomes.
type IMetrics interface {
	Transition(document, action, outcome string)
	Refund(outcome string, amount float64)
	QuoteExpired()
}
