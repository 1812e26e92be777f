package behavior

import (
	"sort"

	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// PatrolName is the Patrol behavior's registry name
const PatrolName = "patrol"

// atStationThreshold is how close counts as "already there" when deciding
// whether to re-select the nearest station
const atStationThreshold = 0.1

// PatrolConfig tunes the fallback wanderer
type PatrolConfig struct {
	Priority float64

	// MaxPatrolDistance bounds target selection around the agent, in AU
	MaxPatrolDistance float64

	// Speed is the cruise multiplier while patrolling
	Speed float64

	// MinWait and MaxWait bracket the randomized pause after each arrival
	MinWait float64
	MaxWait float64

	// NoTargetCooldown is the wait when no station is in patrol range
	NoTargetCooldown float64
}

func (c PatrolConfig) withDefaults() PatrolConfig {
	if c.Priority == 0 {
		c.Priority = 10
	}
	if c.MaxPatrolDistance == 0 {
		c.MaxPatrolDistance = 10.0
	}
	if c.Speed == 0 {
		c.Speed = 0.8
	}
	if c.MinWait == 0 {
		c.MinWait = 2.0
	}
	if c.MaxWait == 0 {
		c.MaxWait = 8.0
	}
	if c.NoTargetCooldown == 0 {
		c.NoTargetCooldown = 5.0
	}
	return c
}

type patrolState struct{ s State }

const keyPatrolTarget = "patrol.target"

func (p patrolState) target() shared.EntityID   { return p.s.GetEntityID(keyPatrolTarget) }
func (p patrolState) setTarget(id shared.EntityID) { p.s.Set(keyPatrolTarget, id) }
func (p patrolState) reset()                    { p.s.Delete(keyPatrolTarget) }

// PatrolBehavior is the always-eligible fallback: drift between nearby
// stations with a randomized dwell at each stop.
// SELECTING_TARGET → TRAVELING → WAITING → SELECTING_TARGET.
type PatrolBehavior struct {
	Base
	cfg PatrolConfig
}

// NewPatrolBehavior creates the patrol strategy
func NewPatrolBehavior(cfg PatrolConfig) *PatrolBehavior {
	return &PatrolBehavior{cfg: cfg.withDefaults()}
}

func (b *PatrolBehavior) Name() string {
	return PatrolName
}

func (b *PatrolBehavior) Priority(ctx *Context) float64 {
	return b.cfg.Priority
}

func (b *PatrolBehavior) OnEnter(ctx *Context) {
	patrolState{ctx.State}.reset()
}

func (b *PatrolBehavior) Update(ctx *Context) Result {
	station, ok := b.selectTarget(ctx)
	if !ok {
		return Waiting(b.cfg.NoTargetCooldown, "no station within patrol range")
	}

	patrolState{ctx.State}.setTarget(station.ID())
	return NavigateTo(station.Position(), station.ID(), b.cfg.Speed)
}

// selectTarget picks the nearest station in range, unless the agent is
// already parked at it, in which case selection shifts to the next four
// nearest so the patrol doesn't circle one pad forever
func (b *PatrolBehavior) selectTarget(ctx *Context) (ports.Station, bool) {
	var candidates []ports.Station
	for _, station := range ctx.World.Stations() {
		if ctx.Position.WithinRange(station.Position(), b.cfg.MaxPatrolDistance) {
			candidates = append(candidates, station)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		di := ctx.Position.DistanceSquaredTo(candidates[i].Position())
		dj := ctx.Position.DistanceSquaredTo(candidates[j].Position())
		if di == dj {
			return candidates[i].ID() < candidates[j].ID()
		}
		return di < dj
	})

	nearest := candidates[0]
	if !ctx.Position.WithinRange(nearest.Position(), atStationThreshold) || len(candidates) == 1 {
		return nearest, true
	}

	next := candidates[1:]
	if len(next) > 4 {
		next = next[:4]
	}
	return next[ctx.Rand.Intn(len(next))], true
}

// OnArrival pauses for a randomized interval before the next selection
func (b *PatrolBehavior) OnArrival(ctx *Context, destination shared.EntityID) Result {
	patrolState{ctx.State}.reset()
	wait := b.cfg.MinWait + ctx.Rand.Float64()*(b.cfg.MaxWait-b.cfg.MinWait)
	return Waiting(wait, "")
}
