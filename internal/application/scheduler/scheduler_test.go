package scheduler_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/application/scheduler"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// scriptedBehavior is a fully controllable behavior for lifecycle tests.
// Counters record how often each hook ran.
type scriptedBehavior struct {
	behavior.Base
	name     string
	priority float64
	eligible bool
	result   behavior.Result

	enters, exits, updates, arrivals int
}

func (b *scriptedBehavior) Name() string { return b.name }

func (b *scriptedBehavior) Priority(ctx *behavior.Context) float64 { return b.priority }

func (b *scriptedBehavior) CanActivate(ctx *behavior.Context) bool { return b.eligible }

func (b *scriptedBehavior) OnEnter(ctx *behavior.Context) { b.enters++ }

func (b *scriptedBehavior) OnExit(ctx *behavior.Context) { b.exits++ }

func (b *scriptedBehavior) Update(ctx *behavior.Context) behavior.Result {
	b.updates++
	return b.result
}

func (b *scriptedBehavior) OnArrival(ctx *behavior.Context, destination shared.EntityID) behavior.Result {
	b.arrivals++
	return behavior.Result{Status: behavior.StatusSuccess}
}

func idle(name string, priority float64) *scriptedBehavior {
	return &scriptedBehavior{
		name:     name,
		priority: priority,
		eligible: true,
		result:   behavior.Result{Status: behavior.StatusSuccess},
	}
}

func singleShipWorld(t *testing.T) (*world.World, *world.Ship) {
	t.Helper()
	w := world.New()
	ship := world.NewShip(world.ShipConfig{ID: "ship-1", CargoCapacity: 10})
	w.AddShip(ship)
	return w, ship
}

func newScheduler(t *testing.T, w *world.World, behaviors ...behavior.Behavior) *scheduler.Scheduler {
	t.Helper()
	registry, err := behavior.NewRegistry(behaviors...)
	require.NoError(t, err)
	return scheduler.New(w, w, registry, nil, rand.New(rand.NewSource(1)))
}

func TestScheduler_FirstTickActivatesHighestPriority(t *testing.T) {
	// Arrange
	w, _ := singleShipWorld(t)
	low := idle("low", 10)
	high := idle("high", 90)
	s := newScheduler(t, w, low, high)

	// Act
	s.Tick(0.1)

	// Assert: one activation, one update, the loser untouched
	assert.Equal(t, 1, high.enters)
	assert.Equal(t, 1, high.updates)
	assert.Equal(t, 0, low.enters)
	assert.Equal(t, 0, low.updates)
	assert.Equal(t, "high", s.StateOf("ship-1").ActiveBehavior)
}

func TestScheduler_NoReEnterWhileBehaviorStaysActive(t *testing.T) {
	// Arrange
	w, _ := singleShipWorld(t)
	b := idle("only", 50)
	s := newScheduler(t, w, b)

	// Act
	for i := 0; i < 5; i++ {
		s.Tick(0.1)
	}

	// Assert
	assert.Equal(t, 1, b.enters)
	assert.Equal(t, 0, b.exits)
	assert.Equal(t, 5, b.updates)
}

func TestScheduler_ActiveBehaviorIsStickyAgainstHigherPriority(t *testing.T) {
	// Arrange: only the low behavior is eligible at first
	w, _ := singleShipWorld(t)
	low := idle("low", 10)
	high := idle("high", 90)
	high.eligible = false
	s := newScheduler(t, w, low, high)
	s.Tick(0.1)
	require.Equal(t, "low", s.StateOf("ship-1").ActiveBehavior)

	// Act: the high-priority behavior becomes eligible mid-activity
	high.eligible = true
	s.Tick(0.1)

	// Assert: the active behavior keeps the agent until it yields
	assert.Equal(t, "low", s.StateOf("ship-1").ActiveBehavior)
	assert.Equal(t, 0, high.enters)
}

func TestScheduler_SwitchRunsExitAndEnterExactlyOnce(t *testing.T) {
	// Arrange
	w, _ := singleShipWorld(t)
	low := idle("low", 10)
	high := idle("high", 90)
	high.eligible = false
	s := newScheduler(t, w, low, high)
	s.Tick(0.1)

	// Act: the active behavior loses its precondition to a better one
	low.eligible = false
	high.eligible = true
	s.Tick(0.1)

	// Assert
	assert.Equal(t, 1, low.exits)
	assert.Equal(t, 1, high.enters)
	assert.Equal(t, "high", s.StateOf("ship-1").ActiveBehavior)
	assert.Equal(t, 1, high.updates)
}

func TestScheduler_WaitTimerParksAgent(t *testing.T) {
	// Arrange: the behavior asks for a 0.3s pause every update
	w, _ := singleShipWorld(t)
	b := idle("waiter", 50)
	b.result = behavior.Waiting(0.3, "")
	s := newScheduler(t, w, b)

	// Act: first tick sets the timer; the next two burn it down
	s.Tick(0.1)
	s.Tick(0.1)
	s.Tick(0.1)

	// Assert: exactly one decision so far
	assert.Equal(t, 1, b.updates)

	// The tick that zeroes the timer resumes decisions.
	s.Tick(0.1)
	assert.Equal(t, 2, b.updates)
}

func TestScheduler_NavigationFlow_SkipsInFlightAndRunsOnArrival(t *testing.T) {
	// Arrange: a behavior that sends the ship to a fixed point
	w, ship := singleShipWorld(t)
	b := idle("mover", 50)
	b.result = behavior.NavigateTo(shared.Position{X: 1, Y: 0}, "station-x", 1.0)
	s := newScheduler(t, w, b)

	// Act: decision tick issues the command
	s.Tick(0.1)
	require.Equal(t, 1, b.updates)
	require.True(t, s.StateOf("ship-1").CommandInFlight)
	assert.Equal(t, shared.EntityID("station-x"), s.StateOf("ship-1").LastTargetID)

	// In-flight ticks do nothing.
	w.Step(0.1)
	s.Tick(0.1)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 0, b.arrivals)

	// Finish the trip; the next tick runs OnArrival and only OnArrival.
	for i := 0; i < 20; i++ {
		w.Step(0.1)
	}
	s.Tick(0.1)
	assert.Equal(t, 1, b.arrivals)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 1.0, ship.Position().X)
	assert.False(t, s.StateOf("ship-1").CommandInFlight)
}

func TestScheduler_SpeedMultiplierScalesCommand(t *testing.T) {
	// Arrange
	w := world.New()
	ship := world.NewShip(world.ShipConfig{ID: "ship-1", CargoCapacity: 10, MaxSpeed: 2.0})
	w.AddShip(ship)
	b := idle("cruiser", 50)
	b.result = behavior.NavigateTo(shared.Position{X: 10, Y: 0}, "", 0.5)
	s := newScheduler(t, w, b)

	// Act: one decision, then one second of travel
	s.Tick(0.1)
	w.Step(1.0)

	// Assert: covered 2.0*0.5 = 1 AU, not the full 2
	assert.InDelta(t, 1.0, ship.Position().X, 1e-9)
}

func TestScheduler_PlayerControlledAgentsUntouched(t *testing.T) {
	// Arrange
	w := world.New()
	w.AddShip(world.NewShip(world.ShipConfig{ID: "ship-player", CargoCapacity: 10, PlayerControlled: true}))
	b := idle("only", 50)
	s := newScheduler(t, w, b)

	// Act
	s.Tick(0.1)

	// Assert
	assert.Equal(t, 0, b.updates)
	assert.Nil(t, s.StateOf("ship-player"))
}

func TestScheduler_PrunesDespawnedAgentState(t *testing.T) {
	// Arrange
	w, _ := singleShipWorld(t)
	s := newScheduler(t, w, idle("only", 50))
	s.Tick(0.1)
	require.NotNil(t, s.StateOf("ship-1"))

	// Act
	w.RemoveShip("ship-1")
	s.Tick(0.1)

	// Assert
	assert.Nil(t, s.StateOf("ship-1"))
}

// TestScheduler_FirstProcessedTraderWinsScarceStock runs two identical
// traders against a mine holding one cargo load: the agent processed first
// (by id order) gets the goods, the other walks away empty.
func TestScheduler_FirstProcessedTraderWinsScarceStock(t *testing.T) {
	// Arrange
	w := world.New()

	mine := world.NewStation("station-mine", shared.Position{X: 0, Y: 0}, "system-1",
		world.NewMarket(5000), world.NewInventory(500))
	mine.MarketState().SetPrices(shared.ResourceOre, 10, 8)
	mine.InventoryState().Add(shared.ResourceOre, 50)
	w.AddStation(mine)

	factory := world.NewStation("station-factory", shared.Position{X: 6, Y: 0}, "system-1",
		world.NewMarket(50000), world.NewInventory(500))
	factory.MarketState().SetPrices(shared.ResourceOre, 25, 20)
	w.AddStation(factory)

	shipA := world.NewShip(world.ShipConfig{ID: "ship-a", CargoCapacity: 50})
	shipB := world.NewShip(world.ShipConfig{ID: "ship-b", CargoCapacity: 50})
	w.AddShip(shipA)
	w.AddShip(shipB)

	s := newScheduler(t, w, behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil))

	// Act: run the loop long enough for a full buy/travel/sell cycle
	for i := 0; i < 40; i++ {
		s.Tick(0.5)
		w.Step(0.5)
	}

	// Assert: ship-a took the whole load and sold it on; ship-b got nothing
	assert.Equal(t, 50, factory.InventoryState().Get(shared.ResourceOre))
	assert.True(t, shipA.Cargo().IsEmpty())
	assert.True(t, shipB.Cargo().IsEmpty())
	assert.Equal(t, 0, mine.InventoryState().Get(shared.ResourceOre))
	assert.InDelta(t, 50000-50*20, factory.MarketState().Credits(), 1e-9)
	assert.InDelta(t, 5000+50*10, mine.MarketState().Credits(), 1e-9)
}
