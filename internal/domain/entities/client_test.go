package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivity(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		in   any
		want ClientActivity
	}{
		{name: "bool true", in: true, want: ClientActivityActive},
		{name: "bool false", in: false, want: ClientActivityInactive},
		{name: "string True", in: "True", want: ClientActivityActive},
		{name: "string False", in: "False", want: ClientActivityInactive},
		{name: "padded lowercase", in: " true ", want: ClientActivityActive},
		{name: "nil", in: nil, want: ClientActivityUnknown},
		{name: "empty string", in: "", want: ClientActivityUnknown},
		{name: "bool pointer", in: &yes, want: ClientActivityActive},
		{name: "false pointer", in: &no, want: ClientActivityInactive},
		{name: "nil pointer", in: (*bool)(nil), want: ClientActivityUnknown},
		{name: "canonical", in: ClientActivityInactive, want: ClientActivityInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseActivity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseActivity("maybe")
	assert.Error(t, err)
	_, err = ParseActivity(42)
	assert.Error(t, err)
}

func TestClient_IsActive(t *testing.T) {
	assert.True(t, Client{Activity: ClientActivityActive}.IsActive())
	assert.False(t, Client{Activity: ClientActivityInactive}.IsActive())
	assert.False(t, Client{Activity: ClientActivityUnknown}.IsActive())
}
