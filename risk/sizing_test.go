package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/leversim/market"
)

func TestBuffer(t *testing.T) {
	t.Parallel()

	// 0.30 + 0.05*0.50, time-cost term fixed at zero
	assert.InDelta(t, 0.325, Buffer(0.30, 0.05, 0.50), 1e-12)
	assert.InDelta(t, 0.0, Buffer(0, 0, 0.50), 1e-12)
}

func TestTargetUnits(t *testing.T) {
	t.Parallel()

	units, err := TargetUnits(10_000, 1_000, 0.30, 0.05, 0.50)
	require.NoError(t, err)

	// equity / (price * buffer) = 10000 / (1000 * 0.325)
	assert.InDelta(t, 10_000/(1_000*0.325), units, 1e-9)
}

func TestTargetUnitsScalesWithEquity(t *testing.T) {
	t.Parallel()

	small, err := TargetUnits(5_000, 1_000, 0.30, 0.05, 0.50)
	require.NoError(t, err)
	big, err := TargetUnits(10_000, 1_000, 0.30, 0.05, 0.50)
	require.NoError(t, err)

	assert.InDelta(t, 2*small, big, 1e-9)
}

func TestCalculateInvalidInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
	}{
		{
			name: "zero price",
			in:   Inputs{Equity: 10_000, Price: 0, MaxDropPercent: 0.30, MarginRequirement: 0.05, MarginCloseoutFraction: 0.50},
		},
		{
			name: "negative price",
			in:   Inputs{Equity: 10_000, Price: -5, MaxDropPercent: 0.30, MarginRequirement: 0.05, MarginCloseoutFraction: 0.50},
		},
		{
			name: "zero buffer",
			in:   Inputs{Equity: 10_000, Price: 1_000},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Calculate(tt.in)
			assert.ErrorIs(t, err, market.ErrInvalidInput)
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	t.Parallel()

	in := Inputs{Equity: 10_000, Price: 1_000, MaxDropPercent: 0.30, MarginRequirement: 0.05, MarginCloseoutFraction: 0.50}
	a, err := Calculate(in)
	require.NoError(t, err)
	b, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
