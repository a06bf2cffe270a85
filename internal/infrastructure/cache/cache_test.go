package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys_FollowInvalidationScopes(t *testing.T) {
	refs := Refs{QuoteID: "q-1", InvoiceID: "inv-1", PayoutID: "p-1"}

	assert.Equal(t, []string{"quote:q-1"}, Keys(QuoteSigned, refs))
	assert.Equal(t, []string{"invoice:inv-1", "invoice:quote:q-1"}, Keys(InvoicePaid, refs))
	assert.Equal(t, []string{"payout:p-1", "payout:invoice:inv-1"}, Keys(PayoutRefunded, refs))
	assert.Equal(t, []string{"invoice:inv-1"}, Keys(InvoiceUpdated, Refs{InvoiceID: "inv-1"}))
	assert.Empty(t, Keys("unknown", refs))
}

func TestInvalidationScopes_CoverEveryMutation(t *testing.T) {
	for _, m := range []Mutation{
		QuoteCreated, QuoteUpdated, QuoteSent, QuoteSigned, QuoteDeclined,
		InvoiceCreated, InvoiceUpdated, InvoiceSent, InvoiceCancelled, InvoicePaid, InvoicePayoutPaid,
		PayoutCreated, PayoutStatus, PayoutRefunded,
	} {
		assert.NotEmpty(t, InvalidationScopes[m], string(m))
	}
}

func TestInMemoryChargeLedger(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryChargeLedger()
	key := ChargeKey("inv-1")

	ok, err := l.Reserve(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Reserve(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must lose")

	_, found, err := l.Lookup(ctx, key)
	require.NoError(t, err)
	assert.False(t, found, "pending charge has no reference")

	require.NoError(t, l.Complete(ctx, key, "pay-1", time.Hour))
	ref, found, err := l.Lookup(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pay-1", ref)

	require.NoError(t, l.Release(ctx, key))
	_, found, _ = l.Lookup(ctx, key)
	assert.True(t, found, "release keeps completed charges")
}

func TestInMemoryChargeLedger_ReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryChargeLedger()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok, _ := l.Reserve(ctx, "k", time.Minute)
	require.True(t, ok)
	require.NoError(t, l.Release(ctx, "k"))
	ok, _ = l.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok, "released key can be reserved again")

	now = now.Add(2 * time.Minute)
	ok, _ = l.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok, "expired reservation is dropped")
}

type doc struct {
	ID    string `json:"id"`
	Total string `json:"total"`
}

func TestInMemoryDocumentCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryDocumentCache(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var got doc
	found, err := c.Get(ctx, "invoice:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "invoice:1", doc{ID: "1", Total: "113.00"}))
	found, err = c.Get(ctx, "invoice:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "113.00", got.Total)

	require.NoError(t, c.Delete(ctx, Keys(InvoicePaid, Refs{InvoiceID: "1"})...))
	found, _ = c.Get(ctx, "invoice:1", &got)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "invoice:2", doc{ID: "2"}))
	now = now.Add(2 * time.Minute)
	found, _ = c.Get(ctx, "invoice:2", &got)
	assert.False(t, found, "entries expire after the ttl")
}
