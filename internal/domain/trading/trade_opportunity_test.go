package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

func mustOpportunity(t *testing.T, amount int, buy, sell, distance float64) *trading.TradeOpportunity {
	t.Helper()
	opp, err := trading.NewTradeOpportunity(
		"station-a", "station-b", shared.ResourceOre, amount, buy, sell, distance)
	require.NoError(t, err)
	return opp
}

func TestNewTradeOpportunity_DerivedValues(t *testing.T) {
	opp := mustOpportunity(t, 50, 10.0, 20.0, 1.0)

	assert.Equal(t, 10.0, opp.ProfitPerUnit())
	assert.Equal(t, 500.0, opp.TotalProfit())
	// score = 0.7·profit + 0.3·(profit/distance)
	assert.InDelta(t, 0.7*500.0+0.3*500.0, opp.Score(), 1e-9)
}

func TestNewTradeOpportunity_Validation(t *testing.T) {
	tests := []struct {
		name     string
		source   shared.EntityID
		dest     shared.EntityID
		resource shared.Resource
		amount   int
		buy      float64
		sell     float64
		distance float64
	}{
		{"empty source", "", "b", shared.ResourceOre, 10, 1, 2, 1},
		{"empty destination", "a", "", shared.ResourceOre, 10, 1, 2, 1},
		{"same station", "a", "a", shared.ResourceOre, 10, 1, 2, 1},
		{"empty resource", "a", "b", "", 10, 1, 2, 1},
		{"zero amount", "a", "b", shared.ResourceOre, 0, 1, 2, 1},
		{"no profit", "a", "b", shared.ResourceOre, 10, 2, 2, 1},
		{"negative distance", "a", "b", shared.ResourceOre, 10, 1, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trading.NewTradeOpportunity(
				tt.source, tt.dest, tt.resource, tt.amount, tt.buy, tt.sell, tt.distance)
			assert.Error(t, err)
		})
	}
}

func TestScore_HigherProfitWinsAtEqualDistance(t *testing.T) {
	richer := mustOpportunity(t, 100, 10.0, 20.0, 2.0)
	poorer := mustOpportunity(t, 50, 10.0, 20.0, 2.0)

	assert.Greater(t, richer.Score(), poorer.Score())
}

func TestScore_ShorterDistanceWinsAtEqualProfit(t *testing.T) {
	near := mustOpportunity(t, 50, 10.0, 20.0, 1.0)
	far := mustOpportunity(t, 50, 10.0, 20.0, 5.0)

	assert.Equal(t, near.TotalProfit(), far.TotalProfit())
	assert.Greater(t, near.Score(), far.Score())
}

func TestScore_ZeroDistanceStaysFinite(t *testing.T) {
	opp := mustOpportunity(t, 10, 1.0, 2.0, 0.0)

	assert.False(t, opp.Score() != opp.Score(), "score must not be NaN")
	assert.Greater(t, opp.Score(), 0.0)
}
