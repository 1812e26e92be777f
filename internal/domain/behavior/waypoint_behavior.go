package behavior

import (
	"fmt"
	"math"

	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// WaypointName is the Waypoint behavior's registry name
const WaypointName = "waypoint"

// WaypointConfig tunes the operator-configured route runner
type WaypointConfig struct {
	Priority float64

	// MinLoad is the smallest auto-trade purchase worth making, in units
	MinLoad int

	// AutoTradeHoldback is the stock always left on the shelf during an
	// auto-trade buy, on top of the station's own reserves
	AutoTradeHoldback int

	// StopPause is the dwell after executing a waypoint's orders
	StopPause float64
}

func (c WaypointConfig) withDefaults() WaypointConfig {
	if c.Priority == 0 {
		c.Priority = 80
	}
	if c.MinLoad == 0 {
		c.MinLoad = 5
	}
	if c.AutoTradeHoldback == 0 {
		c.AutoTradeHoldback = 10
	}
	if c.StopPause == 0 {
		c.StopPause = 2.0
	}
	return c
}

type waypointState struct{ s State }

const (
	keyWaypointIndex = "waypoint.index"
	keyWaypointDone  = "waypoint.done"
)

func (w waypointState) index() int       { return w.s.GetInt(keyWaypointIndex) }
func (w waypointState) setIndex(i int)   { w.s.Set(keyWaypointIndex, i) }
func (w waypointState) done() bool       { _, ok := w.s[keyWaypointDone]; return ok }
func (w waypointState) markDone()        { w.s.Set(keyWaypointDone, true) }
func (w waypointState) resetCompletion() { w.s.Delete(keyWaypointDone) }

// WaypointBehavior walks an operator-configured sequence of station stops.
// IDLE → TRAVELING → EXECUTING_ORDERS → WAITING → IDLE, looping when the
// route is configured to loop.
//
// At each stop, explicit buy/sell orders run exactly as configured (sell
// first, to free cargo space). Stops without explicit orders fall back to
// auto-trade: unload everything the station will pay for, then take on the
// single most abundant resource the station can spare.
//
// Navigation deliberately targets plain coordinates rather than asking for
// a tracked-body lock: station positions are already kept current by the
// orbital collaborator, and a body lock would substitute a moving parent
// for the exact station point.
type WaypointBehavior struct {
	Base
	cfg WaypointConfig
}

// NewWaypointBehavior creates the waypoint strategy
func NewWaypointBehavior(cfg WaypointConfig) *WaypointBehavior {
	return &WaypointBehavior{cfg: cfg.withDefaults()}
}

func (b *WaypointBehavior) Name() string {
	return WaypointName
}

func (b *WaypointBehavior) Priority(ctx *Context) float64 {
	return b.cfg.Priority
}

// CanActivate requires a non-empty configured route that hasn't finished
func (b *WaypointBehavior) CanActivate(ctx *Context) bool {
	if ctx.Agent == nil {
		return false
	}
	route, ok := ctx.Agent.WaypointRoute()
	if !ok || len(route.Orders) == 0 {
		return false
	}
	return !waypointState{ctx.State}.done()
}

// OnEnter keeps the stored index so an interrupted route resumes where it
// left off rather than restarting from the first stop
func (b *WaypointBehavior) OnEnter(ctx *Context) {
	waypointState{ctx.State}.resetCompletion()
}

func (b *WaypointBehavior) Update(ctx *Context) Result {
	route, ok := ctx.Agent.WaypointRoute()
	if !ok || len(route.Orders) == 0 {
		return Failure("no waypoint route configured")
	}

	state := waypointState{ctx.State}
	idx := state.index() % len(route.Orders)
	state.setIndex(idx)

	order := route.Orders[idx]
	station, found := ctx.World.Station(order.StationID)
	if !found {
		// Skip dead stops instead of stalling the whole route.
		b.advance(ctx, state, route)
		return Failure(fmt.Sprintf("waypoint station %s no longer exists", order.StationID))
	}
	return NavigateTo(station.Position(), station.ID(), 1.0)
}

func (b *WaypointBehavior) OnArrival(ctx *Context, destination shared.EntityID) Result {
	route, ok := ctx.Agent.WaypointRoute()
	if !ok || len(route.Orders) == 0 {
		return Failure("no waypoint route configured")
	}

	state := waypointState{ctx.State}
	order := route.Orders[state.index()%len(route.Orders)]
	if destination != order.StationID {
		return Failure(fmt.Sprintf("arrived at %s, expected waypoint %s", destination, order.StationID))
	}

	station, found := ctx.World.Station(destination)
	if !found {
		b.advance(ctx, state, route)
		return Failure(fmt.Sprintf("waypoint station %s no longer exists", destination))
	}

	var message string
	if order.Buy == "" && order.Sell == "" {
		message = b.autoTrade(ctx, station)
	} else {
		message = b.executeOrders(ctx, station, order)
	}

	b.advance(ctx, state, route)
	return Waiting(b.cfg.StopPause, message)
}

// advance moves to the next stop, wrapping for looped routes and marking
// one-way routes finished at the end
func (b *WaypointBehavior) advance(ctx *Context, state waypointState, route *ports.WaypointRoute) {
	next := state.index() + 1
	if next >= len(route.Orders) {
		if !route.Loop {
			state.markDone()
			return
		}
		next = 0
	}
	state.setIndex(next)
}

// executeOrders runs the stop's explicit orders: sell before buy so the
// sale frees cargo space for the purchase
func (b *WaypointBehavior) executeOrders(ctx *Context, station ports.Station, order ports.WaypointOrder) string {
	var sold, bought int
	if order.Sell != "" {
		sold = b.sell(ctx, station, order.Sell)
	}
	if order.Buy != "" {
		bought = b.buy(ctx, station, order.Buy, station.Inventory().AvailableForTrade(order.Buy))
	}
	return fmt.Sprintf("waypoint %s: sold %d, bought %d", station.ID(), sold, bought)
}

// autoTrade is the fallback for stops without explicit orders: unload
// everything the station pays for, then load up on the station's most
// abundant resource, leaving its reserves plus a fixed holdback untouched
func (b *WaypointBehavior) autoTrade(ctx *Context, station ports.Station) string {
	sold := 0
	for resource := range ctx.Agent.Cargo().Contents() {
		sold += b.sell(ctx, station, resource)
	}

	resource, spare := b.mostAbundant(station)
	bought := 0
	if resource != "" && spare > b.cfg.MinLoad {
		bought = b.buy(ctx, station, resource, spare)
	}
	return fmt.Sprintf("auto-trade %s: sold %d, bought %d", station.ID(), sold, bought)
}

// mostAbundant returns the station resource with the largest spare stock
// after reserves and the auto-trade holdback
func (b *WaypointBehavior) mostAbundant(station ports.Station) (shared.Resource, int) {
	var (
		best      shared.Resource
		bestSpare int
	)
	for _, resource := range shared.AllResources() {
		spare := utils.Min(
			station.Inventory().AvailableForTrade(resource),
			station.Inventory().Get(resource)-b.cfg.AutoTradeHoldback,
		)
		if spare > bestSpare {
			best = resource
			bestSpare = spare
		}
	}
	return best, bestSpare
}

// sell unloads all carried units of one resource, capped by station funds
func (b *WaypointBehavior) sell(ctx *Context, station ports.Station, resource shared.Resource) int {
	price, ok := station.Market().BuyPrice(resource)
	if !ok || price <= 0 {
		return 0
	}

	cargo := ctx.Agent.Cargo()
	carried := cargo.Get(resource)
	affordable := int(math.Floor(station.Market().Credits() / price))
	planned := utils.Min(carried, affordable)
	if planned <= 0 {
		return 0
	}

	removed := cargo.Remove(resource, planned)
	sold := station.Inventory().Add(resource, removed)
	if sold < removed {
		cargo.Add(resource, removed-sold)
	}
	station.Market().Withdraw(float64(sold) * price)
	return sold
}

// buy loads up to spare units of one resource, capped by free cargo space
func (b *WaypointBehavior) buy(ctx *Context, station ports.Station, resource shared.Resource, spare int) int {
	price, ok := station.Market().SellPrice(resource)
	if !ok {
		return 0
	}

	cargo := ctx.Agent.Cargo()
	amount := utils.Min(spare, cargo.FreeSpace())
	if amount <= 0 {
		return 0
	}

	removed := station.Inventory().Remove(resource, amount)
	added := cargo.Add(resource, removed)
	if added < removed {
		station.Inventory().Add(resource, removed-added)
	}
	station.Market().Deposit(float64(added) * price)
	return added
}
