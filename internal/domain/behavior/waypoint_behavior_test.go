package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// waypointFixture is a two-stop world with a freighter configured for the
// given route
func waypointFixture(t *testing.T, route *ports.WaypointRoute) (*world.World, *world.Ship, *behavior.Context) {
	t.Helper()

	w := buildWorld(
		stationSpec{id: "station-alpha", x: 0, y: 0, credits: 5000},
		stationSpec{id: "station-beta", x: 5, y: 0, credits: 5000},
	)

	alpha, _ := w.StationByID("station-alpha")
	alpha.MarketState().SetPrices(shared.ResourceOre, 10, 8)
	alpha.InventoryState().Add(shared.ResourceOre, 30)

	beta, _ := w.StationByID("station-beta")
	beta.MarketState().SetPrices(shared.ResourceOre, 20, 15)

	ship := world.NewShip(world.ShipConfig{
		ID:            "ship-freighter-1",
		Position:      shared.Position{X: 0, Y: 0},
		CargoCapacity: 40,
		Route:         route,
	})
	w.AddShip(ship)

	return w, ship, newContext(w, ship)
}

func loopRoute() *ports.WaypointRoute {
	return &ports.WaypointRoute{
		Orders: []ports.WaypointOrder{
			{StationID: "station-alpha"},
			{StationID: "station-beta"},
		},
		Loop: true,
	}
}

func TestWaypointBehavior_CanActivate(t *testing.T) {
	// Arrange
	_, _, withRoute := waypointFixture(t, loopRoute())
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	w := buildWorld(stationSpec{id: "station-alpha"})
	bare := world.NewShip(world.ShipConfig{ID: "ship-1", CargoCapacity: 10})
	w.AddShip(bare)

	// Act / Assert
	assert.True(t, b.CanActivate(withRoute))
	assert.False(t, b.CanActivate(newContext(w, bare)))
}

func TestWaypointBehavior_Update_TargetsCurrentStop(t *testing.T) {
	// Arrange
	_, _, ctx := waypointFixture(t, loopRoute())
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.Equal(t, shared.EntityID("station-alpha"), result.TargetID)
	assert.Empty(t, result.TargetBody)
}

func TestWaypointBehavior_AutoTrade_BuysMostAbundantMinusHoldback(t *testing.T) {
	// Arrange: no explicit orders, alpha holds 30 ore
	w, ship, ctx := waypointFixture(t, loopRoute())
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	result := b.OnArrival(ctx, "station-alpha")

	// Assert: 30 minus the 10-unit holdback bought, pause before moving on
	alpha, _ := w.StationByID("station-alpha")
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 2.0, result.WaitTime)
	assert.Equal(t, 20, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 10, alpha.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 5000+20*10, alpha.MarketState().Credits(), 1e-9)
}

func TestWaypointBehavior_AutoTrade_SkipsThinStock(t *testing.T) {
	// Arrange: spare after holdback is below the minimum worthwhile load
	w, ship, ctx := waypointFixture(t, loopRoute())
	alpha, _ := w.StationByID("station-alpha")
	alpha.InventoryState().Remove(shared.ResourceOre, 16) // 14 left, spare 4
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	b.OnArrival(ctx, "station-alpha")

	// Assert
	assert.True(t, ship.Cargo().IsEmpty())
}

func TestWaypointBehavior_AutoTrade_SellsCarriedCargoAtNextStop(t *testing.T) {
	// Arrange: run alpha then beta; beta pays 15 for ore
	w, ship, ctx := waypointFixture(t, loopRoute())
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)
	require.Equal(t, behavior.StatusWaiting, b.OnArrival(ctx, "station-alpha").Status)
	require.Equal(t, shared.EntityID("station-beta"), b.Update(ctx).TargetID)

	// Act
	result := b.OnArrival(ctx, "station-beta")

	// Assert: the 20 units bought at alpha are sold to beta; the stop's own
	// auto-trade then reloads the spare 10 above beta's holdback
	beta, _ := w.StationByID("station-beta")
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 10, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 10, beta.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 5000-20*15+10*20, beta.MarketState().Credits(), 1e-9)
}

func TestWaypointBehavior_ExplicitOrders_SellBeforeBuy(t *testing.T) {
	// Arrange: a stop ordered to sell metal and buy ore; the sale must free
	// the space the purchase needs
	route := &ports.WaypointRoute{
		Orders: []ports.WaypointOrder{
			{StationID: "station-alpha", Sell: shared.ResourceMetal, Buy: shared.ResourceOre},
		},
		Loop: true,
	}
	w, ship, ctx := waypointFixture(t, route)
	alpha, _ := w.StationByID("station-alpha")
	alpha.MarketState().SetPrices(shared.ResourceMetal, 12, 9)
	ship.CargoState().Add(shared.ResourceMetal, 40) // hold completely full
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})
	require.Equal(t, behavior.StatusRunning, b.Update(ctx).Status)

	// Act
	result := b.OnArrival(ctx, "station-alpha")

	// Assert
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 0, ship.Cargo().Get(shared.ResourceMetal))
	assert.Equal(t, 30, ship.Cargo().Get(shared.ResourceOre))
	assert.Equal(t, 40, alpha.InventoryState().Get(shared.ResourceMetal))
}

func TestWaypointBehavior_LoopWrapsAround(t *testing.T) {
	// Arrange
	_, _, ctx := waypointFixture(t, loopRoute())
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	// Act: complete both stops
	require.Equal(t, shared.EntityID("station-alpha"), b.Update(ctx).TargetID)
	b.OnArrival(ctx, "station-alpha")
	require.Equal(t, shared.EntityID("station-beta"), b.Update(ctx).TargetID)
	b.OnArrival(ctx, "station-beta")

	// Assert: back to the first stop
	assert.Equal(t, shared.EntityID("station-alpha"), b.Update(ctx).TargetID)
	assert.True(t, b.CanActivate(ctx))
}

func TestWaypointBehavior_OneWayRouteFinishes(t *testing.T) {
	// Arrange
	route := loopRoute()
	route.Loop = false
	_, _, ctx := waypointFixture(t, route)
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	// Act
	b.Update(ctx)
	b.OnArrival(ctx, "station-alpha")
	b.Update(ctx)
	b.OnArrival(ctx, "station-beta")

	// Assert: route done, behavior no longer eligible until re-entered
	assert.False(t, b.CanActivate(ctx))
}

func TestWaypointBehavior_SkipsDeadStop(t *testing.T) {
	// Arrange: the first stop no longer exists
	route := &ports.WaypointRoute{
		Orders: []ports.WaypointOrder{
			{StationID: "station-gone"},
			{StationID: "station-beta"},
		},
		Loop: true,
	}
	_, _, ctx := waypointFixture(t, route)
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	// Act
	first := b.Update(ctx)
	second := b.Update(ctx)

	// Assert
	assert.Equal(t, behavior.StatusFailure, first.Status)
	assert.Equal(t, shared.EntityID("station-beta"), second.TargetID)
}

func TestWaypointBehavior_OnEnter_ResumesStoredStop(t *testing.T) {
	// Arrange: finished one-way route, then the operator re-activates
	route := loopRoute()
	route.Loop = false
	_, _, ctx := waypointFixture(t, route)
	b := behavior.NewWaypointBehavior(behavior.WaypointConfig{})
	b.Update(ctx)
	b.OnArrival(ctx, "station-alpha")

	// Act: a behavior switch re-enters mid-route
	b.OnExit(ctx)
	b.OnEnter(ctx)

	// Assert: the stored index survived, so the route resumes at beta
	assert.Equal(t, shared.EntityID("station-beta"), b.Update(ctx).TargetID)
}
