package behavior

import (
	"fmt"
	"math"

	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// DroneName is the Drone behavior's registry name
const DroneName = "drone"

// DroneConfig tunes the local hauler. Zero values fall back to the
// defaults below.
type DroneConfig struct {
	Priority float64

	// SearchRadius bounds the pickup scan around the drone, in AU
	SearchRadius float64

	// RestockThreshold is the home stock level below which a resource
	// counts as needed
	RestockThreshold int

	// SpareMinimum is the stock a candidate station must exceed before the
	// drone will draw from it
	SpareMinimum int

	// PickupCap is the hard per-trip ceiling, keeping hauls conservative
	PickupCap int

	// PatrolRadius is the loiter distance around home when no work exists;
	// patrol waypoints stay within 1.5x this radius
	PatrolRadius float64

	// PatrolSpeed is the speed multiplier while loitering
	PatrolSpeed float64

	// IdleCooldown is the wait after a scan that found no work and no
	// patrol point worth visiting
	IdleCooldown float64
}

func (c DroneConfig) withDefaults() DroneConfig {
	if c.Priority == 0 {
		c.Priority = 100
	}
	if c.SearchRadius == 0 {
		c.SearchRadius = 8.0
	}
	if c.RestockThreshold == 0 {
		c.RestockThreshold = 20
	}
	if c.SpareMinimum == 0 {
		c.SpareMinimum = 5
	}
	if c.PickupCap == 0 {
		c.PickupCap = 10
	}
	if c.PatrolRadius == 0 {
		c.PatrolRadius = 2.0
	}
	if c.PatrolSpeed == 0 {
		c.PatrolSpeed = 0.5
	}
	if c.IdleCooldown == 0 {
		c.IdleCooldown = 3.0
	}
	return c
}

// Drone phases
const (
	dronePhaseIdle      = ""
	dronePhaseToPickup  = "traveling_to_pickup"
	dronePhaseToDeliver = "traveling_to_deliver"
	dronePhasePatrol    = "patrolling"
)

type droneState struct{ s State }

const (
	keyDronePhase    = "drone.phase"
	keyDroneStation  = "drone.pickup_station"
	keyDroneResource = "drone.pickup_resource"
)

func (d droneState) phase() string         { return d.s.GetString(keyDronePhase) }
func (d droneState) setPhase(phase string) { d.s.Set(keyDronePhase, phase) }
func (d droneState) pickupStation() shared.EntityID {
	return d.s.GetEntityID(keyDroneStation)
}
func (d droneState) pickupResource() shared.Resource {
	return shared.Resource(d.s.GetString(keyDroneResource))
}
func (d droneState) setPickup(station shared.EntityID, resource shared.Resource) {
	d.s.Set(keyDroneStation, station)
	d.s.Set(keyDroneResource, resource.String())
}
func (d droneState) reset() {
	d.s.Delete(keyDroneStation, keyDroneResource)
	d.setPhase(dronePhaseIdle)
}

// DroneBehavior is the locally restricted hauler: it keeps its home station
// stocked by ferrying small loads from neighbouring stations in the same
// planetary grouping, and loiters around home when nothing needs moving.
//
// IDLE → TRAVELING_TO_PICKUP → PICKING_UP → TRAVELING_TO_DELIVER →
// DELIVERING → IDLE, with a PATROLLING side-state when no work exists.
type DroneBehavior struct {
	Base
	cfg DroneConfig
}

// NewDroneBehavior creates the drone strategy
func NewDroneBehavior(cfg DroneConfig) *DroneBehavior {
	return &DroneBehavior{cfg: cfg.withDefaults()}
}

func (b *DroneBehavior) Name() string {
	return DroneName
}

func (b *DroneBehavior) Priority(ctx *Context) float64 {
	return b.cfg.Priority
}

// CanActivate requires a live home station
func (b *DroneBehavior) CanActivate(ctx *Context) bool {
	if ctx.Agent == nil {
		return false
	}
	home, ok := ctx.Agent.HomeStation()
	if !ok {
		return false
	}
	_, ok = ctx.World.Station(home)
	return ok
}

func (b *DroneBehavior) OnEnter(ctx *Context) {
	droneState{ctx.State}.reset()
}

func (b *DroneBehavior) Update(ctx *Context) Result {
	state := droneState{ctx.State}
	home, ok := b.home(ctx)
	if !ok {
		return Failure("drone home station missing")
	}

	switch state.phase() {
	case dronePhaseToPickup:
		return b.resumeTo(ctx, state.pickupStation(), 1.0)
	case dronePhaseToDeliver:
		return NavigateTo(home.Position(), home.ID(), 1.0)
	}

	// Anything already in the hold goes home first.
	if !ctx.Agent.Cargo().IsEmpty() {
		state.setPhase(dronePhaseToDeliver)
		return NavigateTo(home.Position(), home.ID(), 1.0)
	}

	if station, resource, found := b.findWork(ctx, home); found {
		state.setPickup(station.ID(), resource)
		state.setPhase(dronePhaseToPickup)
		return NavigateTo(station.Position(), station.ID(), 1.0)
	}

	return b.patrol(ctx, state, home)
}

// findWork scans nearby same-system stations for a resource the home
// station is short on and the candidate can spare, picking the nearest
// qualifying match
func (b *DroneBehavior) findWork(ctx *Context, home ports.Station) (ports.Station, shared.Resource, bool) {
	var needed []shared.Resource
	for _, resource := range shared.AllResources() {
		if home.Inventory().Get(resource) < b.cfg.RestockThreshold {
			needed = append(needed, resource)
		}
	}
	if len(needed) == 0 {
		return nil, "", false
	}

	var (
		bestStation  ports.Station
		bestResource shared.Resource
		bestDistance = math.MaxFloat64
	)
	for _, station := range ctx.World.Stations() {
		if station.ID() == home.ID() || station.System() != home.System() {
			continue
		}
		if !ctx.Position.WithinRange(station.Position(), b.cfg.SearchRadius) {
			continue
		}
		distance := ctx.Position.DistanceTo(station.Position())
		if distance >= bestDistance {
			continue
		}
		for _, resource := range needed {
			if station.Inventory().Get(resource) > b.cfg.SpareMinimum {
				bestStation = station
				bestResource = resource
				bestDistance = distance
				break
			}
		}
	}
	return bestStation, bestResource, bestStation != nil
}

// patrol loiters around home at reduced speed: return home when drifted
// past the patrol bound, otherwise hop to a random point inside it
func (b *DroneBehavior) patrol(ctx *Context, state droneState, home ports.Station) Result {
	bound := b.cfg.PatrolRadius * 1.5
	state.setPhase(dronePhasePatrol)

	if !ctx.Position.WithinRange(home.Position(), bound) {
		return NavigateTo(home.Position(), home.ID(), b.cfg.PatrolSpeed)
	}

	angle := ctx.Rand.Float64() * 2 * math.Pi
	radius := ctx.Rand.Float64() * bound
	point := shared.Position{
		X: home.Position().X + radius*math.Cos(angle),
		Y: home.Position().Y + radius*math.Sin(angle),
	}
	return NavigateTo(point, home.ID(), b.cfg.PatrolSpeed)
}

func (b *DroneBehavior) OnArrival(ctx *Context, destination shared.EntityID) Result {
	state := droneState{ctx.State}
	home, ok := b.home(ctx)
	if !ok {
		state.reset()
		return Failure("drone home station missing")
	}

	switch state.phase() {
	case dronePhaseToPickup:
		return b.executePickup(ctx, state, destination)
	case dronePhaseToDeliver:
		if destination != home.ID() {
			state.reset()
			return Failure(fmt.Sprintf("expected home %s, arrived at %s", home.ID(), destination))
		}
		return b.executeDelivery(ctx, state, home)
	default:
		// Patrol hop finished; next Update picks a new point or finds work.
		return Result{Status: StatusSuccess}
	}
}

// executePickup draws a deliberately conservative load: half the available
// stock, capped by free cargo space and the hard per-trip ceiling, so one
// pass never drains a source station
func (b *DroneBehavior) executePickup(ctx *Context, state droneState, destination shared.EntityID) Result {
	if destination != state.pickupStation() {
		state.reset()
		return Failure(fmt.Sprintf("arrived at unexpected station %s", destination))
	}
	station, ok := ctx.World.Station(destination)
	if !ok {
		state.reset()
		return Failure("pickup station disappeared en route")
	}

	resource := state.pickupResource()
	cargo := ctx.Agent.Cargo()
	available := station.Inventory().Get(resource)
	amount := utils.Min3(available/2, cargo.FreeSpace(), b.cfg.PickupCap)
	if amount <= 0 {
		state.reset()
		return Waiting(b.cfg.IdleCooldown, fmt.Sprintf("nothing left to pick up at %s", destination))
	}

	removed := station.Inventory().Remove(resource, amount)
	added := cargo.Add(resource, removed)
	if added < removed {
		station.Inventory().Add(resource, removed-added)
	}

	state.setPhase(dronePhaseToDeliver)
	home, _ := b.home(ctx)
	return NavigateTo(home.Position(), home.ID(), 1.0)
}

// executeDelivery unloads everything into the home station, putting back
// whatever home storage cannot absorb
func (b *DroneBehavior) executeDelivery(ctx *Context, state droneState, home ports.Station) Result {
	cargo := ctx.Agent.Cargo()
	delivered := 0
	for resource, units := range cargo.Contents() {
		removed := cargo.Remove(resource, units)
		added := home.Inventory().Add(resource, removed)
		if added < removed {
			cargo.Add(resource, removed-added)
		}
		delivered += added
	}

	state.reset()
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("delivered %d units to %s", delivered, home.ID()),
	}
}

func (b *DroneBehavior) home(ctx *Context) (ports.Station, bool) {
	id, ok := ctx.Agent.HomeStation()
	if !ok {
		return nil, false
	}
	return ctx.World.Station(id)
}

func (b *DroneBehavior) resumeTo(ctx *Context, id shared.EntityID, speed float64) Result {
	station, ok := ctx.World.Station(id)
	if !ok {
		droneState{ctx.State}.reset()
		return Failure(fmt.Sprintf("station %s no longer exists", id))
	}
	return NavigateTo(station.Position(), id, speed)
}
