package usecase

import (
	"testing"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyUseCase_UpsertService(t *testing.T) {
	f := newFixture(t)
	uc := NewPartyUseCase(f.store.Services, f.store.Clients, "", WithClock(f.clock.Now))

	svc, err := uc.UpsertService(f.ctx, ServiceInput{
		ID: " svc-2 ", Name: "Gutter cleaning", Status: entities.ServiceStatusActive,
		Price: decimal.RequireFromString("45.50"), Currency: "cad",
	})
	require.NoError(t, err)
	assert.Equal(t, "svc-2", svc.ID)
	assert.Equal(t, "CAD", svc.Currency)

	got, err := uc.GetService(f.ctx, "svc-2")
	require.NoError(t, err)
	assert.Equal(t, "45.5", got.Price.String())

	_, err = uc.UpsertService(f.ctx, ServiceInput{Status: "DONE", Price: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Equal(t, []string{"service_id_required", "service_status_invalid", "price_negative"}, gate.Codes(shared.Reasons(err)))

	eur := NewPartyUseCase(f.store.Services, f.store.Clients, "eur")
	svc, err = eur.UpsertService(f.ctx, ServiceInput{ID: "svc-3", Status: entities.ServiceStatusPending, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "EUR", svc.Currency)

	_, err = uc.GetService(f.ctx, "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPartyUseCase_UpsertClientNormalizesActivity(t *testing.T) {
	f := newFixture(t)
	uc := NewPartyUseCase(f.store.Services, f.store.Clients, "")

	cases := []struct {
		raw  any
		want entities.ClientActivity
	}{
		{true, entities.ClientActivityActive},
		{"False", entities.ClientActivityInactive},
		{nil, entities.ClientActivityUnknown},
	}
	for _, tc := range cases {
		c, err := uc.UpsertClient(f.ctx, ClientInput{ID: "cl-9", Email: "bo@example.com", Active: tc.raw})
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.Activity, "raw %v", tc.raw)
	}

	_, err := uc.UpsertClient(f.ctx, ClientInput{ID: "cl-9", Active: "maybe"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = uc.GetClient(f.ctx, " ")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
