package behavior_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// tradingFixture is one mine→factory ore lane with a trader parked between
// the two stations
func tradingFixture(t *testing.T) (*world.World, *world.Ship, *behavior.Context) {
	t.Helper()

	w := buildWorld(
		stationSpec{id: "station-mine", x: 0, y: 0, credits: 2000},
		stationSpec{id: "station-factory", x: 4, y: 0, credits: 10000},
	)

	mine, _ := w.StationByID("station-mine")
	mine.MarketState().SetPrices(shared.ResourceOre, 10, 8)
	mine.InventoryState().Add(shared.ResourceOre, 100)

	factory, _ := w.StationByID("station-factory")
	factory.MarketState().SetPrices(shared.ResourceOre, 22, 18)

	ship := world.NewShip(world.ShipConfig{
		ID:            "ship-trader-1",
		Position:      shared.Position{X: 2, Y: 0},
		CargoCapacity: 50,
	})
	w.AddShip(ship)

	return w, ship, newContext(w, ship)
}

func TestTradingBehavior_Update_FindsRouteAndNavigatesToSource(t *testing.T) {
	// Arrange
	_, _, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.True(t, result.HasTarget)
	assert.Equal(t, shared.EntityID("station-mine"), result.TargetID)
	assert.Equal(t, 0.0, result.TargetX)
	assert.Equal(t, 0.0, result.TargetY)
}

func TestTradingBehavior_Update_NoStationsWaitsOut(t *testing.T) {
	// Arrange
	w := buildWorld()
	ship := world.NewShip(world.ShipConfig{ID: "ship-trader-1", CargoCapacity: 50})
	w.AddShip(ship)
	ctx := newContext(w, ship)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 5.0, result.WaitTime)
}

func TestTradingBehavior_Update_UnprofitableDirectionIgnored(t *testing.T) {
	// Arrange: factory charges more than the mine pays, so only the
	// mine→factory direction should qualify
	_, _, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{MinProfitPerUnit: 1}, nil, nil)

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, shared.EntityID("station-mine"), result.TargetID)
}

func TestTradingBehavior_FullCycle_BuyThenSell(t *testing.T) {
	// Arrange
	w, ship, ctx := tradingFixture(t)
	recorder := &captureRecorder{}
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, recorder, clock)

	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act: arrive at the mine
	buyResult := b.OnArrival(ctx, "station-mine")

	// Assert: 50 units bought (clamped by cargo space), mine paid
	mine, _ := w.StationByID("station-mine")
	assert.Equal(t, behavior.StatusRunning, buyResult.Status)
	assert.Equal(t, shared.EntityID("station-factory"), buyResult.TargetID)
	assert.Equal(t, 50, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 50, mine.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 2000+50*10, mine.MarketState().Credits(), 1e-9)

	// Act: arrive at the factory
	sellResult := b.OnArrival(ctx, "station-factory")

	// Assert: everything sold at the factory's buy price
	factory, _ := w.StationByID("station-factory")
	assert.Equal(t, behavior.StatusSuccess, sellResult.Status)
	assert.True(t, ship.Cargo().IsEmpty())
	assert.Equal(t, 50, factory.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 10000-50*18, factory.MarketState().Credits(), 1e-9)

	// Ledger got both halves of the cycle.
	require.Len(t, recorder.entries, 2)
	assert.Equal(t, trading.TradeSideBuy, recorder.entries[0].Side())
	assert.Equal(t, 50, recorder.entries[0].ActualUnits())
	assert.Equal(t, trading.TradeSideSell, recorder.entries[1].Side())
	assert.InDelta(t, 50*18, recorder.entries[1].TotalValue(), 1e-9)
}

func TestTradingBehavior_OnArrival_DrainedSourceCoolsDown(t *testing.T) {
	// Arrange: route selected, then the mine empties before arrival
	w, _, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	mine, _ := w.StationByID("station-mine")
	mine.InventoryState().Remove(shared.ResourceOre, 100)

	// Act
	result := b.OnArrival(ctx, "station-mine")

	// Assert: failed-buy cooldown, route abandoned
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 2.0, result.WaitTime)

	// Restock and confirm the next update starts a fresh search instead of
	// resuming the abandoned route.
	mine.InventoryState().Add(shared.ResourceOre, 100)
	assert.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)
}

func TestTradingBehavior_ExecuteSell_CappedByStationFunds(t *testing.T) {
	// Arrange: the factory can only afford 10 of the 50 units
	w, ship, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)
	require.Equal(t, behavior.StatusRunning, b.OnArrival(ctx, "station-mine").Status)

	factory, _ := w.StationByID("station-factory")
	factory.MarketState().Withdraw(factory.MarketState().Credits() - 10*18)

	// Act
	result := b.OnArrival(ctx, "station-factory")

	// Assert: partial sale, leftovers stay in cargo, cycle still completes
	assert.Equal(t, behavior.StatusSuccess, result.Status)
	assert.Equal(t, 40, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 10, factory.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 0, factory.MarketState().Credits(), 1e-9)
}

func TestEvaluatePair_SizesTradeFromReserveAwareStock(t *testing.T) {
	// Arrange: 100 ore on the shelf, 80 held back for the station
	w, _, _ := tradingFixture(t)
	mine, _ := w.StationByID("station-mine")
	factory, _ := w.StationByID("station-factory")
	mine.InventoryState().SetReserve(shared.ResourceOre, 80)

	// Act
	opp := behavior.EvaluatePair(mine, factory, shared.ResourceOre, 100, 0)

	// Assert: only the 20 spare units are up for grabs
	require.NotNil(t, opp)
	assert.Equal(t, 20, opp.Amount())
}

func TestTradingBehavior_ExecuteBuy_LeavesStationReserveUntouched(t *testing.T) {
	// Arrange: the mine reserves 60 of its 100 ore
	w, ship, ctx := tradingFixture(t)
	mine, _ := w.StationByID("station-mine")
	mine.InventoryState().SetReserve(shared.ResourceOre, 60)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	result := b.OnArrival(ctx, "station-mine")

	// Assert: the buy stops at the reserve line, not at cargo space
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.Equal(t, 40, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 60, mine.InventoryState().Get(shared.ResourceOre))
	assert.Equal(t, 0, mine.InventoryState().AvailableForTrade(shared.ResourceOre))
}

func TestTradingBehavior_OnArrival_UnexpectedStationResets(t *testing.T) {
	// Arrange
	_, _, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	result := b.OnArrival(ctx, "station-factory")

	// Assert
	assert.Equal(t, behavior.StatusFailure, result.Status)
}

func TestTradingBehavior_OnEnter_DropsStaleRoute(t *testing.T) {
	// Arrange: mid-route state from a previous activation
	_, _, ctx := tradingFixture(t)
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	b.OnEnter(ctx)
	result := b.Update(ctx)

	// Assert: the machine restarted from a fresh search, not a resume
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.Equal(t, shared.EntityID("station-mine"), result.TargetID)
}

func TestTradingBehavior_Defaults(t *testing.T) {
	// Arrange
	b := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)

	// Assert
	assert.Equal(t, "trading", b.Name())
	assert.Equal(t, 50.0, b.Priority(nil))
}
