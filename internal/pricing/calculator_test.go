package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEndToEnd(t *testing.T) {
	got, err := Calculate(2000)
	require.NoError(t, err)

	assert.Equal(t, int64(25), got.TicketPrice)
	assert.Equal(t, int64(96), got.TotalSpots)
	assert.Equal(t, 2400.0, got.TotalPot)
	assert.Equal(t, 200.0, got.PlatformFee)
	assert.Equal(t, 100.0, got.Buffer)
	assert.Equal(t, 84.0, got.ProcessingFee)
	assert.Equal(t, 600.0, got.IRSWithholding)
}

func TestCalculateSmallPayouts(t *testing.T) {
	tests := []struct {
		net       float64
		wantPrice int64
		wantSpots int64
		wantPot   float64
	}{
		{net: 100, wantPrice: 5, wantSpots: 25, wantPot: 125},
		{net: 500, wantPrice: 5, wantSpots: 120, wantPot: 600},
		{net: 1000, wantPrice: 10, wantSpots: 120, wantPot: 1200},
	}
	for _, tt := range tests {
		got, err := Calculate(tt.net)
		require.NoError(t, err)
		assert.Equal(t, tt.wantPrice, got.TicketPrice, "net %v", tt.net)
		assert.Equal(t, tt.wantSpots, got.TotalSpots, "net %v", tt.net)
		assert.Equal(t, tt.wantPot, got.TotalPot, "net %v", tt.net)
	}
}

func TestTicketPriceTierBoundaries(t *testing.T) {
	tests := []struct {
		net  float64
		want int64
	}{
		{0.01, 5},
		{500, 5},
		{500.01, 10},
		{501, 10},
		{1000, 10},
		{1001, 25},
		{4999, 25},
		{5000, 50},
		{24999, 50},
		{25000, 100},
		{1e7, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TicketPrice(tt.net), "net %v", tt.net)
	}
}

func TestPlatformFeeBrackets(t *testing.T) {
	tests := []struct {
		net  float64
		want float64
	}{
		{1000, 100},
		{50000, 5000},
		{75000, 6250},
		{100000, 7500},
		{150000, 8750},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PlatformFee(tt.net), 1e-9, "net %v", tt.net)
	}
}

func TestBufferMinimum(t *testing.T) {
	assert.Equal(t, 10.0, Buffer(50))
	assert.Equal(t, 10.0, Buffer(200))
	assert.InDelta(t, 100.0, Buffer(2000), 1e-9)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	for _, net := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := Calculate(net)
		require.ErrorIs(t, err, ErrInvalidInput, "net %v", net)
		assert.Equal(t, Result{}, got)
	}
}

func TestCalculateRejectsPayoutsAboveMaximum(t *testing.T) {
	for _, net := range []float64{MaxNetPayout, 1e21, 1e300, math.MaxFloat64} {
		got, err := Calculate(net)
		require.ErrorIs(t, err, ErrInvalidInput, "net %v", net)
		assert.Equal(t, Result{}, got)
	}
}

func TestCalculateLargestSupportedPayout(t *testing.T) {
	net := 999_999_999_999.99
	got, err := Calculate(net)
	require.NoError(t, err)
	assert.Equal(t, int64(topTicketPrice), got.TicketPrice)
	assert.Positive(t, got.TotalSpots)
	assert.Equal(t, float64(got.TicketPrice*got.TotalSpots), got.TotalPot)
	assert.GreaterOrEqual(t, got.TotalPot, net)
}

func TestCalculateDeterministic(t *testing.T) {
	for _, net := range []float64{1, 333.33, 2000, 49999.99, 123456.78} {
		first, err := Calculate(net)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := Calculate(net)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	}
}

func TestCalculateInvariants(t *testing.T) {
	for net := 1.0; net <= 250000; net += 97.3 {
		got, err := Calculate(net)
		require.NoError(t, err)

		require.Equal(t, float64(got.TicketPrice*got.TotalSpots), got.TotalPot, "net %v", net)
		require.GreaterOrEqual(t, got.TotalPot, net+PlatformFee(net)+Buffer(net), "net %v", net)
		require.Equal(t, round2(ProcessingRate*got.TotalPot), got.ProcessingFee, "net %v", net)
		require.Equal(t, round2(WithholdingRate*got.TotalPot), got.IRSWithholding, "net %v", net)
	}
}

func TestCalculateMonotonic(t *testing.T) {
	nets := []float64{}
	for net := 1.0; net <= 30000; net++ {
		nets = append(nets, net)
	}
	for net := 30000.0; net <= 300000; net += 13 {
		nets = append(nets, net)
	}
	prev := 0.0
	for _, net := range nets {
		got, err := Calculate(net)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.TotalPot, prev, "net %v", net)
		prev = got.TotalPot
	}
}

func TestSolvePotConverges(t *testing.T) {
	pot, err := solvePot(1150)
	require.NoError(t, err)
	fixed := 1150 / (1 - ProcessingRate)
	assert.InDelta(t, fixed, pot, 1)

	got, err := Calculate(1000)
	require.NoError(t, err)
	assert.Equal(t, round2(ProcessingRate*got.TotalPot), got.ProcessingFee)
	assert.Equal(t, 42.0, got.ProcessingFee)
}

func TestRelaxReportsConvergenceFailure(t *testing.T) {
	_, err := relax(100, 1.5, 50)
	require.ErrorIs(t, err, ErrConvergence)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.01, round2(1.005))
	assert.Equal(t, -1.01, round2(-1.005))
	assert.Equal(t, 84.0, round2(0.035*2400))
	assert.Equal(t, 2.67, round2(2.665))
}
