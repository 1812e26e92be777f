package steps

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/application/scheduler"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// ledgerRecorder keeps every recorded trade for assertions
type ledgerRecorder struct {
	entries []*trading.TradeExecutionLog
}

func (r *ledgerRecorder) Record(entry *trading.TradeExecutionLog) {
	r.entries = append(r.entries, entry)
}

// simulationContext holds one scenario's world, behaviors, and the latest
// decision per ship. Behavior scenarios drive Update/OnArrival directly;
// simulation scenarios run the scheduler loop over the same fixtures.
type simulationContext struct {
	w        *world.World
	clock    *shared.MockClock
	recorder *ledgerRecorder

	behaviors map[string]behavior.Behavior
	states    map[shared.EntityID]behavior.State
	active    map[shared.EntityID]string
	results   map[shared.EntityID]behavior.Result
}

func (ctx *simulationContext) reset() {
	ctx.w = world.New()
	ctx.clock = shared.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx.recorder = &ledgerRecorder{}
	ctx.behaviors = map[string]behavior.Behavior{
		"trading":  behavior.NewTradingBehavior(behavior.TradingConfig{}, ctx.recorder, ctx.clock),
		"drone":    behavior.NewDroneBehavior(behavior.DroneConfig{}),
		"waypoint": behavior.NewWaypointBehavior(behavior.WaypointConfig{}),
		"patrol":   behavior.NewPatrolBehavior(behavior.PatrolConfig{}),
	}
	ctx.states = make(map[shared.EntityID]behavior.State)
	ctx.active = make(map[shared.EntityID]string)
	ctx.results = make(map[shared.EntityID]behavior.Result)
}

func (ctx *simulationContext) behaviorContext(ship *world.Ship) *behavior.Context {
	state, ok := ctx.states[ship.ID()]
	if !ok {
		state = make(behavior.State)
		ctx.states[ship.ID()] = state
	}
	return &behavior.Context{
		World:     ctx.w,
		Agent:     ship,
		Position:  ship.Position(),
		DeltaTime: 0.1,
		State:     state,
		Rand:      rand.New(rand.NewSource(7)),
	}
}

func (ctx *simulationContext) ship(id string) (*world.Ship, error) {
	ship, ok := ctx.w.Ship(shared.EntityID(id))
	if !ok {
		return nil, fmt.Errorf("no ship %q in the scenario world", id)
	}
	return ship, nil
}

func (ctx *simulationContext) station(id string) (*world.Station, error) {
	station, ok := ctx.w.StationByID(shared.EntityID(id))
	if !ok {
		return nil, fmt.Errorf("no station %q in the scenario world", id)
	}
	return station, nil
}

// cellValue reads one named column from a table row, matching the header
// by name so feature tables stay order-independent
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) (string, error) {
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName {
			return row.Cells[i].Value, nil
		}
	}
	return "", fmt.Errorf("table has no %q column", columnName)
}

// Given steps

func (ctx *simulationContext) theFollowingStationsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("station table needs a header and at least one row")
	}
	for _, row := range table.Rows[1:] {
		var (
			id       string
			x, y     float64
			credits  int
			resource string
			sell     float64
			buy      float64
			stock    int
		)
		cells := []struct {
			name string
			dest any
		}{
			{"station", &id},
			{"x", &x},
			{"y", &y},
			{"credits", &credits},
			{"resource", &resource},
			{"sell", &sell},
			{"buy", &buy},
			{"stock", &stock},
		}
		for _, cell := range cells {
			raw, err := cellValue(table, row, cell.name)
			if err != nil {
				return err
			}
			if _, err := fmt.Sscan(raw, cell.dest); err != nil {
				return fmt.Errorf("bad %q cell %q: %w", cell.name, raw, err)
			}
		}
		if err := ctx.aStationAtCoordinatesWithCredits(id, x, y, credits); err != nil {
			return err
		}
		if err := ctx.stationListsResourceAtPrices(id, resource, sell, buy); err != nil {
			return err
		}
		if stock > 0 {
			if err := ctx.stationStocksUnitsOfResource(id, stock, resource); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ctx *simulationContext) aStationAtCoordinatesWithCredits(id string, x, y float64, credits int) error {
	ctx.w.AddStation(world.NewStation(
		shared.EntityID(id),
		shared.Position{X: x, Y: y},
		"system-1",
		world.NewMarket(float64(credits)),
		world.NewInventory(500),
	))
	return nil
}

func (ctx *simulationContext) stationListsResourceAtPrices(id, resource string, sellPrice, buyPrice float64) error {
	station, err := ctx.station(id)
	if err != nil {
		return err
	}
	station.MarketState().SetPrices(shared.Resource(resource), sellPrice, buyPrice)
	return nil
}

func (ctx *simulationContext) stationStocksUnitsOfResource(id string, units int, resource string) error {
	station, err := ctx.station(id)
	if err != nil {
		return err
	}
	station.InventoryState().Add(shared.Resource(resource), units)
	return nil
}

func (ctx *simulationContext) aTradingShipWithCapacityAt(id string, capacity int, x, y float64) error {
	ctx.w.AddShip(world.NewShip(world.ShipConfig{
		ID:            shared.EntityID(id),
		Position:      shared.Position{X: x, Y: y},
		CargoCapacity: capacity,
	}))
	return nil
}

func (ctx *simulationContext) aCargoDroneWithCapacityHomedAt(id string, capacity int, home string) error {
	station, err := ctx.station(home)
	if err != nil {
		return err
	}
	ctx.w.AddShip(world.NewShip(world.ShipConfig{
		ID:            shared.EntityID(id),
		Position:      station.Position(),
		CargoCapacity: capacity,
		HomeStation:   station.ID(),
	}))
	return nil
}

func (ctx *simulationContext) shipFollowsALoopingRouteThrough(id, first, second string) error {
	ship, err := ctx.ship(id)
	if err != nil {
		return err
	}
	ship.SetRoute(&ports.WaypointRoute{
		Orders: []ports.WaypointOrder{
			{StationID: shared.EntityID(first)},
			{StationID: shared.EntityID(second)},
		},
		Loop: true,
	})
	return nil
}

// When steps

func (ctx *simulationContext) theBehaviorPlansForShip(name, id string) error {
	ship, err := ctx.ship(id)
	if err != nil {
		return err
	}
	b, ok := ctx.behaviors[name]
	if !ok {
		return fmt.Errorf("unknown behavior %q", name)
	}
	ctx.active[ship.ID()] = name
	ctx.results[ship.ID()] = b.Update(ctx.behaviorContext(ship))
	return nil
}

func (ctx *simulationContext) shipArrivesAtStation(id, stationID string) error {
	ship, err := ctx.ship(id)
	if err != nil {
		return err
	}
	name, ok := ctx.active[ship.ID()]
	if !ok {
		return fmt.Errorf("ship %q has no active behavior to arrive with", id)
	}
	b := ctx.behaviors[name]
	ctx.results[ship.ID()] = b.OnArrival(ctx.behaviorContext(ship), shared.EntityID(stationID))
	return nil
}

func (ctx *simulationContext) theSimulationRunsForTicksOfSeconds(ticks int, dt float64) error {
	registry, err := behavior.NewRegistry(
		ctx.behaviors["drone"],
		ctx.behaviors["waypoint"],
		ctx.behaviors["trading"],
		ctx.behaviors["patrol"],
	)
	if err != nil {
		return err
	}
	s := scheduler.New(ctx.w, ctx.w, registry, nil, rand.New(rand.NewSource(1)))
	for i := 0; i < ticks; i++ {
		s.Tick(dt)
		ctx.w.Step(dt)
	}
	return nil
}

// Then steps

func (ctx *simulationContext) shipShouldBeOrderedToStation(id, stationID string) error {
	result, ok := ctx.results[shared.EntityID(id)]
	if !ok {
		return fmt.Errorf("no recorded decision for ship %q", id)
	}
	if !result.HasTarget {
		return fmt.Errorf("decision has no navigation target")
	}
	if result.TargetID != shared.EntityID(stationID) {
		return fmt.Errorf("expected target %q, got %q", stationID, result.TargetID)
	}
	return nil
}

func (ctx *simulationContext) theOrderShouldRunAtSpeedMultiplier(id string, multiplier float64) error {
	result, ok := ctx.results[shared.EntityID(id)]
	if !ok {
		return fmt.Errorf("no recorded decision for ship %q", id)
	}
	if math.Abs(result.SpeedMultiplier-multiplier) > 1e-9 {
		return fmt.Errorf("expected speed multiplier %v, got %v", multiplier, result.SpeedMultiplier)
	}
	return nil
}

func (ctx *simulationContext) shipShouldWaitSeconds(id string, seconds float64) error {
	result, ok := ctx.results[shared.EntityID(id)]
	if !ok {
		return fmt.Errorf("no recorded decision for ship %q", id)
	}
	if result.Status != behavior.StatusWaiting {
		return fmt.Errorf("expected a waiting decision, got status %v", result.Status)
	}
	if math.Abs(result.WaitTime-seconds) > 1e-9 {
		return fmt.Errorf("expected wait of %vs, got %vs", seconds, result.WaitTime)
	}
	return nil
}

func (ctx *simulationContext) shipShouldCarryUnitsOfResource(id string, units int, resource string) error {
	ship, err := ctx.ship(id)
	if err != nil {
		return err
	}
	got := ship.Cargo().Get(shared.Resource(resource))
	if got != units {
		return fmt.Errorf("expected %d units of %s in the hold, got %d", units, resource, got)
	}
	return nil
}

func (ctx *simulationContext) shipShouldHaveAnEmptyHold(id string) error {
	ship, err := ctx.ship(id)
	if err != nil {
		return err
	}
	if !ship.Cargo().IsEmpty() {
		return fmt.Errorf("expected an empty hold, got %v", ship.Cargo().Contents())
	}
	return nil
}

func (ctx *simulationContext) stationShouldStockUnitsOfResource(id string, units int, resource string) error {
	station, err := ctx.station(id)
	if err != nil {
		return err
	}
	got := station.InventoryState().Get(shared.Resource(resource))
	if got != units {
		return fmt.Errorf("expected station %s to stock %d units of %s, got %d", id, units, resource, got)
	}
	return nil
}

func (ctx *simulationContext) stationShouldHoldCredits(id string, credits float64) error {
	station, err := ctx.station(id)
	if err != nil {
		return err
	}
	got := station.MarketState().Credits()
	if math.Abs(got-credits) > 1e-9 {
		return fmt.Errorf("expected station %s to hold %v credits, got %v", id, credits, got)
	}
	return nil
}

func (ctx *simulationContext) tradesShouldBeRecorded(count int) error {
	if len(ctx.recorder.entries) != count {
		return fmt.Errorf("expected %d recorded trades, got %d", count, len(ctx.recorder.entries))
	}
	return nil
}

func InitializeSimulationScenario(sc *godog.ScenarioContext) {
	simCtx := &simulationContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		simCtx.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^the following stations exist:$`, simCtx.theFollowingStationsExist)
	sc.Step(`^a station "([^"]*)" at \(([^,]+), ([^)]+)\) with (\d+) credits$`, simCtx.aStationAtCoordinatesWithCredits)
	sc.Step(`^station "([^"]*)" lists ([A-Z]+) at sell price ([\d.]+) and buy price ([\d.]+)$`, simCtx.stationListsResourceAtPrices)
	sc.Step(`^station "([^"]*)" stocks (\d+) units of ([A-Z]+)$`, simCtx.stationStocksUnitsOfResource)
	sc.Step(`^a trading ship "([^"]*)" with cargo capacity (\d+) at \(([^,]+), ([^)]+)\)$`, simCtx.aTradingShipWithCapacityAt)
	sc.Step(`^a cargo drone "([^"]*)" with cargo capacity (\d+) homed at "([^"]*)"$`, simCtx.aCargoDroneWithCapacityHomedAt)
	sc.Step(`^ship "([^"]*)" follows a looping route through "([^"]*)" and "([^"]*)"$`, simCtx.shipFollowsALoopingRouteThrough)

	// When steps
	sc.Step(`^the (trading|drone|waypoint|patrol) behavior plans for ship "([^"]*)"$`, simCtx.theBehaviorPlansForShip)
	sc.Step(`^ship "([^"]*)" arrives at "([^"]*)"$`, simCtx.shipArrivesAtStation)
	sc.Step(`^the simulation runs for (\d+) ticks of ([\d.]+) seconds$`, simCtx.theSimulationRunsForTicksOfSeconds)

	// Then steps
	sc.Step(`^ship "([^"]*)" should be ordered to "([^"]*)"$`, simCtx.shipShouldBeOrderedToStation)
	sc.Step(`^ship "([^"]*)" should move at speed multiplier ([\d.]+)$`, simCtx.theOrderShouldRunAtSpeedMultiplier)
	sc.Step(`^ship "([^"]*)" should wait ([\d.]+) seconds$`, simCtx.shipShouldWaitSeconds)
	sc.Step(`^ship "([^"]*)" should carry (\d+) units of ([A-Z]+)$`, simCtx.shipShouldCarryUnitsOfResource)
	sc.Step(`^ship "([^"]*)" should have an empty hold$`, simCtx.shipShouldHaveAnEmptyHold)
	sc.Step(`^station "([^"]*)" should stock (\d+) units of ([A-Z]+)$`, simCtx.stationShouldStockUnitsOfResource)
	sc.Step(`^station "([^"]*)" should hold (\d+) credits$`, simCtx.stationShouldHoldCredits)
	sc.Step(`^(\d+) trades should be recorded$`, simCtx.tradesShouldBeRecorded)
}
