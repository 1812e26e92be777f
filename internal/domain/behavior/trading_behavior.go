package behavior

import (
	"fmt"
	"math"
	"sort"

	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// TradingName is the Trading behavior's registry name
const TradingName = "trading"

// TradingConfig tunes the trading state machine. Zero values fall back to
// the defaults below.
type TradingConfig struct {
	// Priority among eligible behaviors
	Priority float64

	// MaxRouteDistance bounds the opportunity search around the agent, in AU
	MaxRouteDistance float64

	// MinProfitPerUnit filters marginal routes out of the scan
	MinProfitPerUnit float64

	// NoRouteCooldown is the wait after a fruitless route query, so an idle
	// trader doesn't busy-query every tick
	NoRouteCooldown float64

	// FailedBuyCooldown is the wait after abandoning a route whose source
	// stock evaporated before arrival
	FailedBuyCooldown float64
}

func (c TradingConfig) withDefaults() TradingConfig {
	if c.Priority == 0 {
		c.Priority = 50
	}
	if c.MaxRouteDistance == 0 {
		c.MaxRouteDistance = 15.0
	}
	if c.NoRouteCooldown == 0 {
		c.NoRouteCooldown = 5.0
	}
	if c.FailedBuyCooldown == 0 {
		c.FailedBuyCooldown = 2.0
	}
	return c
}

// Trading phases, stored in the agent's state blob
const (
	tradingPhaseIdle         = ""
	tradingPhaseTravelToBuy  = "traveling_to_buy"
	tradingPhaseTravelToSell = "traveling_to_sell"
)

// tradingState is the typed accessor over the trading keys of the blob
type tradingState struct{ s State }

const (
	keyTradingPhase     = "trading.phase"
	keyTradingSource    = "trading.route_source"
	keyTradingDest      = "trading.route_destination"
	keyTradingResource  = "trading.route_resource"
	keyTradingAmount    = "trading.route_amount"
	keyTradingBuyPrice  = "trading.route_buy_price"
	keyTradingSellPrice = "trading.route_sell_price"
)

func (t tradingState) phase() string          { return t.s.GetString(keyTradingPhase) }
func (t tradingState) setPhase(phase string)  { t.s.Set(keyTradingPhase, phase) }
func (t tradingState) source() shared.EntityID {
	return t.s.GetEntityID(keyTradingSource)
}
func (t tradingState) destination() shared.EntityID {
	return t.s.GetEntityID(keyTradingDest)
}
func (t tradingState) resource() shared.Resource {
	return shared.Resource(t.s.GetString(keyTradingResource))
}
func (t tradingState) amount() int        { return t.s.GetInt(keyTradingAmount) }
func (t tradingState) buyPrice() float64  { return t.s.GetFloat(keyTradingBuyPrice) }
func (t tradingState) sellPrice() float64 { return t.s.GetFloat(keyTradingSellPrice) }

func (t tradingState) setRoute(opp *trading.TradeOpportunity) {
	t.s.Set(keyTradingSource, opp.Source())
	t.s.Set(keyTradingDest, opp.Destination())
	t.s.Set(keyTradingResource, opp.Resource().String())
	t.s.Set(keyTradingAmount, opp.Amount())
	t.s.Set(keyTradingBuyPrice, opp.BuyPrice())
	t.s.Set(keyTradingSellPrice, opp.SellPrice())
}

func (t tradingState) clearRoute() {
	t.s.Delete(keyTradingSource, keyTradingDest, keyTradingResource,
		keyTradingAmount, keyTradingBuyPrice, keyTradingSellPrice)
	t.setPhase(tradingPhaseIdle)
}

// TradingBehavior runs the buy-low/sell-high cycle:
// IDLE → TRAVELING_TO_BUY → BUYING → TRAVELING_TO_SELL → SELLING → IDLE.
// Route discovery goes through the injected route finder when one is wired,
// otherwise through a local scan of nearby station pairs.
type TradingBehavior struct {
	Base
	cfg      TradingConfig
	recorder trading.TradeRecorder
	clock    shared.Clock
}

// NewTradingBehavior creates the trading strategy. The recorder may be nil;
// trades then go unlogged. A nil clock defaults to the real clock.
func NewTradingBehavior(cfg TradingConfig, recorder trading.TradeRecorder, clock shared.Clock) *TradingBehavior {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &TradingBehavior{cfg: cfg.withDefaults(), recorder: recorder, clock: clock}
}

func (b *TradingBehavior) Name() string {
	return TradingName
}

func (b *TradingBehavior) Priority(ctx *Context) float64 {
	return b.cfg.Priority
}

// CanActivate requires a cargo hold to trade out of
func (b *TradingBehavior) CanActivate(ctx *Context) bool {
	return ctx.Agent != nil && ctx.Agent.Cargo() != nil
}

// OnEnter resets the machine to IDLE, abandoning any stale route from a
// previous activation
func (b *TradingBehavior) OnEnter(ctx *Context) {
	tradingState{ctx.State}.clearRoute()
}

func (b *TradingBehavior) Update(ctx *Context) Result {
	state := tradingState{ctx.State}

	switch state.phase() {
	case tradingPhaseTravelToBuy:
		// Navigation was interrupted (behavior switch or resume); re-issue.
		return b.navigateToStation(ctx, state.source())
	case tradingPhaseTravelToSell:
		return b.navigateToStation(ctx, state.destination())
	default:
		return b.findRoute(ctx, state)
	}
}

func (b *TradingBehavior) findRoute(ctx *Context, state tradingState) Result {
	cargo := ctx.Agent.Cargo()
	if cargo == nil {
		return Failure("agent has no cargo hold")
	}

	var route *trading.TradeOpportunity
	if ctx.Routes != nil {
		route = ctx.Routes.FindBestRoute(
			ctx.Agent.ID(), ctx.Position, cargo.FreeSpace(),
			b.cfg.MaxRouteDistance, b.cfg.MinProfitPerUnit)
	} else {
		route = b.scanLocally(ctx, cargo.FreeSpace())
	}

	if route == nil {
		return Waiting(b.cfg.NoRouteCooldown, "no profitable route found")
	}

	state.setRoute(route)
	state.setPhase(tradingPhaseTravelToBuy)
	return b.navigateToStation(ctx, route.Source())
}

func (b *TradingBehavior) navigateToStation(ctx *Context, id shared.EntityID) Result {
	station, ok := ctx.World.Station(id)
	if !ok {
		tradingState{ctx.State}.clearRoute()
		return Failure(fmt.Sprintf("route station %s no longer exists", id))
	}
	return NavigateTo(station.Position(), id, 1.0)
}

// OnArrival executes the BUYING or SELLING half of the cycle, depending on
// which end of the route the agent just reached
func (b *TradingBehavior) OnArrival(ctx *Context, destination shared.EntityID) Result {
	state := tradingState{ctx.State}

	switch {
	case state.phase() == tradingPhaseTravelToBuy && destination == state.source():
		return b.executeBuy(ctx, state)
	case state.phase() == tradingPhaseTravelToSell && destination == state.destination():
		return b.executeSell(ctx, state)
	default:
		state.clearRoute()
		return Failure(fmt.Sprintf("arrived at unexpected station %s", destination))
	}
}

// executeBuy transfers the route's resource from station stock into cargo
// and credits the station. Amounts are clamped against the live snapshot,
// not the planned route, so a drained station aborts cleanly.
func (b *TradingBehavior) executeBuy(ctx *Context, state tradingState) Result {
	station, ok := ctx.World.Station(state.source())
	if !ok {
		state.clearRoute()
		return Failure("buy station disappeared en route")
	}

	cargo := ctx.Agent.Cargo()
	resource := state.resource()
	amount := utils.Min3(state.amount(), station.Inventory().AvailableForTrade(resource), cargo.FreeSpace())
	if amount <= 0 {
		state.clearRoute()
		return Waiting(b.cfg.FailedBuyCooldown, fmt.Sprintf("nothing to buy at %s", station.ID()))
	}

	removed := station.Inventory().Remove(resource, amount)
	added := cargo.Add(resource, removed)
	if added < removed {
		// Cargo filled mid-transfer; return the excess to the shelf.
		station.Inventory().Add(resource, removed-added)
	}
	station.Market().Deposit(float64(added) * state.buyPrice())

	b.record(ctx, station.ID(), trading.TradeSideBuy, resource, amount, added, state.buyPrice())

	state.setPhase(tradingPhaseTravelToSell)
	return b.navigateToStation(ctx, state.destination())
}

// executeSell unloads all matching cargo at the destination's buy price,
// capped by what the station can afford. Partial sales are fine; leftovers
// ride along to the next route.
func (b *TradingBehavior) executeSell(ctx *Context, state tradingState) Result {
	station, ok := ctx.World.Station(state.destination())
	if !ok {
		state.clearRoute()
		return Failure("sell station disappeared en route")
	}

	cargo := ctx.Agent.Cargo()
	resource := state.resource()
	price := state.sellPrice()

	carried := cargo.Get(resource)
	affordable := carried
	if price > 0 {
		affordable = int(math.Floor(station.Market().Credits() / price))
	}
	planned := utils.Min(carried, affordable)

	sold := 0
	if planned > 0 {
		removed := cargo.Remove(resource, planned)
		sold = station.Inventory().Add(resource, removed)
		if sold < removed {
			// Station storage full; put the remainder back in the hold.
			cargo.Add(resource, removed-sold)
		}
		station.Market().Withdraw(float64(sold) * price)
	}

	b.record(ctx, station.ID(), trading.TradeSideSell, resource, carried, sold, price)

	state.clearRoute()
	if sold == 0 {
		return Waiting(b.cfg.FailedBuyCooldown, fmt.Sprintf("%s could not afford any %s", station.ID(), resource))
	}
	return Result{Status: StatusSuccess, Message: fmt.Sprintf("sold %d %s at %s", sold, resource, station.ID())}
}

func (b *TradingBehavior) record(
	ctx *Context,
	station shared.EntityID,
	side trading.TradeSide,
	resource shared.Resource,
	planned, actual int,
	price float64,
) {
	if b.recorder == nil {
		return
	}
	entry, err := trading.NewTradeExecutionLog(
		ctx.Agent.ID(), station, side, resource, planned, actual, price, b.clock.Now())
	if err != nil {
		return
	}
	b.recorder.Record(entry)
}

// scanLocally is the internal route search used when no finder is injected:
// every ordered pair of stations within range, every resource kind, best
// score wins. Same clamping rules as the route finder.
func (b *TradingBehavior) scanLocally(ctx *Context, cargoSpace int) *trading.TradeOpportunity {
	stations := ctx.World.Stations()
	var nearby []ports.Station
	for _, st := range stations {
		if ctx.Position.WithinRange(st.Position(), b.cfg.MaxRouteDistance) {
			nearby = append(nearby, st)
		}
	}
	if len(nearby) < 2 {
		return nil
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].ID() < nearby[j].ID() })

	var best *trading.TradeOpportunity
	for _, src := range nearby {
		for _, dst := range nearby {
			if src.ID() == dst.ID() {
				continue
			}
			for _, resource := range shared.AllResources() {
				opp := EvaluatePair(src, dst, resource, cargoSpace, b.cfg.MinProfitPerUnit)
				if opp == nil {
					continue
				}
				if best == nil || opp.Score() > best.Score() {
					best = opp
				}
			}
		}
	}
	return best
}

// EvaluatePair builds the opportunity for hauling one resource from src to
// dst, or nil when the pair is unprofitable or infeasible. The tradeable
// amount is clamped to the minimum of the source stock available for trade
// (raw stock less the operator reserve), the agent's free cargo space,
// destination free storage, and what the destination can afford.
//
// Shared with the route finder so the two scans price identically.
func EvaluatePair(
	src, dst ports.Station,
	resource shared.Resource,
	cargoSpace int,
	minProfit float64,
) *trading.TradeOpportunity {
	buyPrice, ok := src.Market().SellPrice(resource)
	if !ok {
		return nil
	}
	sellPrice, ok := dst.Market().BuyPrice(resource)
	if !ok {
		return nil
	}
	if sellPrice-buyPrice < minProfit {
		return nil
	}

	affordable := 0
	if sellPrice > 0 {
		affordable = int(math.Floor(dst.Market().Credits() / sellPrice))
	}
	amount := utils.Min4(
		src.Inventory().AvailableForTrade(resource),
		cargoSpace,
		dst.Inventory().FreeSpace(),
		affordable,
	)
	if amount <= 0 {
		return nil
	}

	opp, err := trading.NewTradeOpportunity(
		src.ID(), dst.ID(), resource, amount,
		buyPrice, sellPrice, src.Position().DistanceTo(dst.Position()))
	if err != nil {
		return nil
	}
	return opp
}
