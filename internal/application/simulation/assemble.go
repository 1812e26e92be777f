// Package simulation assembles worlds, behaviors, and the scheduler into
// runnable simulations, exposed as mediator commands and queries.
package simulation

import (
	"math/rand"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/application/routing"
	"github.com/orbitalworks/stellarsim/internal/application/scheduler"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
	"github.com/orbitalworks/stellarsim/internal/infrastructure/config"
)

// BuildRegistry maps configuration onto the four built-in behaviors.
// Registration order doubles as the tie-break order for equal priorities.
func BuildRegistry(cfg config.AIConfig, recorder trading.TradeRecorder, clock shared.Clock) (*behavior.Registry, error) {
	return behavior.NewRegistry(
		behavior.NewDroneBehavior(behavior.DroneConfig{
			Priority:         cfg.Drone.Priority,
			SearchRadius:     cfg.Drone.SearchRadius,
			RestockThreshold: cfg.Drone.RestockThreshold,
			SpareMinimum:     cfg.Drone.SpareMinimum,
			PickupCap:        cfg.Drone.PickupCap,
			PatrolRadius:     cfg.Drone.PatrolRadius,
			PatrolSpeed:      cfg.Drone.PatrolSpeed,
		}),
		behavior.NewWaypointBehavior(behavior.WaypointConfig{
			Priority:          cfg.Waypoint.Priority,
			MinLoad:           cfg.Waypoint.MinLoad,
			AutoTradeHoldback: cfg.Waypoint.AutoTradeHoldback,
			StopPause:         cfg.Waypoint.StopPause,
		}),
		behavior.NewTradingBehavior(behavior.TradingConfig{
			Priority:          cfg.Trading.Priority,
			MaxRouteDistance:  cfg.Trading.MaxRouteDistance,
			MinProfitPerUnit:  cfg.Trading.MinProfitPerUnit,
			NoRouteCooldown:   cfg.Trading.NoRouteCooldown,
			FailedBuyCooldown: cfg.Trading.FailedBuyCooldown,
		}, recorder, clock),
		behavior.NewPatrolBehavior(behavior.PatrolConfig{
			Priority:          cfg.Patrol.Priority,
			MaxPatrolDistance: cfg.Patrol.MaxPatrolDistance,
			Speed:             cfg.Patrol.Speed,
			MinWait:           cfg.Patrol.MinWait,
			MaxWait:           cfg.Patrol.MaxWait,
		}),
	)
}

// NewRouteFinder builds the shared route finder over a world
func NewRouteFinder(w *world.World, clock shared.Clock, cfg config.RoutingConfig) *routing.Finder {
	return routing.NewFinder(w, clock, routing.Config{
		CellSize:        cfg.CellSize,
		RefreshInterval: cfg.RefreshInterval,
		RouteTTL:        cfg.RouteTTL,
		MaxCachedRoutes: cfg.MaxCachedRoutes,
	})
}

// Assembly is a fully wired simulation: world, route finder, and scheduler
type Assembly struct {
	World     *world.World
	Finder    *routing.Finder
	Scheduler *scheduler.Scheduler
}

// Assemble spawns a world from the simulation config and wires the AI
// stack over it. The rng seeds from the world seed so runs replay exactly.
func Assemble(
	simCfg config.SimulationConfig,
	aiCfg config.AIConfig,
	recorder trading.TradeRecorder,
	clock shared.Clock,
	verbose bool,
) (*Assembly, error) {
	w := world.Spawn(world.SpawnConfig{
		Seed:        simCfg.Seed,
		Stations:    simCfg.Stations,
		Traders:     simCfg.Traders,
		Drones:      simCfg.Drones,
		Patrols:     simCfg.Patrols,
		FieldRadius: simCfg.FieldRadius,
		SystemCount: simCfg.Systems,
	})

	registry, err := BuildRegistry(aiCfg, recorder, clock)
	if err != nil {
		return nil, err
	}

	finder := NewRouteFinder(w, clock, aiCfg.Routing)
	sched := scheduler.New(w, w, registry, finder, rand.New(rand.NewSource(simCfg.Seed)))
	sched.Verbose = verbose

	return &Assembly{World: w, Finder: finder, Scheduler: sched}, nil
}
