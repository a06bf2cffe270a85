package usecase

import (
	"context"
	"testing"
	"time"

	"fieldservice_billing/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedDoc struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

func TestCached_ReadRacingInvalidationIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	docs := cache.NewInMemoryDocumentCache(time.Minute)
	o := newOptions([]Option{WithCache(docs)})
	key := cache.InvoiceKey("inv-race")
	present := func(d cachedDoc) bool { return d.ID != "" }

	got, err := cached(ctx, o, key, func() (cachedDoc, error) {
		// A commit lands between the repository read and the cache write.
		o.invalidate(ctx, cache.InvoiceUpdated, cache.Refs{InvoiceID: "inv-race"})
		return cachedDoc{ID: "inv-race", Version: 1}, nil
	}, present)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)

	var stored cachedDoc
	hit, err := docs.Get(ctx, key, &stored)
	require.NoError(t, err)
	assert.False(t, hit)

	got, err = cached(ctx, o, key, func() (cachedDoc, error) {
		return cachedDoc{ID: "inv-race", Version: 2}, nil
	}, present)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)

	hit, err = docs.Get(ctx, key, &stored)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, stored.Version)
}

func TestCached_MissingRecordIsNotCached(t *testing.T) {
	ctx := context.Background()
	docs := cache.NewInMemoryDocumentCache(time.Minute)
	o := newOptions([]Option{WithCache(docs)})
	key := cache.PayoutKey("missing")

	_, err := cached(ctx, o, key, func() (cachedDoc, error) { return cachedDoc{}, nil },
		func(d cachedDoc) bool { return d.ID != "" })
	require.NoError(t, err)

	var stored cachedDoc
	hit, err := docs.Get(ctx, key, &stored)
	require.NoError(t, err)
	assert.False(t, hit)
}
