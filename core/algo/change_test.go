package algo

import (
	"testing"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestChangeOf(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		prior     *float64
		wantNil   bool
		wantPct   float64
		wantDir   schema.Direction
		higherBad bool
	}{
		{name: "no prior", current: 10, prior: nil, wantNil: true},
		{name: "zero prior", current: 10, prior: ptr(0), wantNil: true},
		{name: "increase", current: 120, prior: ptr(100), wantPct: 20, wantDir: schema.Up},
		{name: "decrease", current: 50, prior: ptr(100), wantPct: -50, wantDir: schema.Down},
		{name: "flat counts as up", current: 100, prior: ptr(100), wantPct: 0, wantDir: schema.Up},
		{name: "negative prior uses magnitude", current: -5, prior: ptr(-10), wantPct: 50, wantDir: schema.Up},
		{name: "flag carried", current: 0.3, prior: ptr(0.2), wantPct: 50, wantDir: schema.Up, higherBad: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChangeOf(tt.current, tt.prior, tt.higherBad)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.wantPct, got.Percent, 1e-9)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.Equal(t, tt.higherBad, got.HigherIsWorse)
		})
	}
}

func TestChangeOfFlagDoesNotAffectMagnitude(t *testing.T) {
	a := ChangeOf(0.45, ptr(0.30), false)
	b := ChangeOf(0.45, ptr(0.30), true)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Percent, b.Percent)
	assert.Equal(t, a.Direction, b.Direction)
	assert.False(t, a.Worsened())
	assert.True(t, b.Worsened())
}
