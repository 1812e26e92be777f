package behavior_test

import (
	"math/rand"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// stationSpec describes a fixture station in a compact literal
type stationSpec struct {
	id       shared.EntityID
	x, y     float64
	system   string
	credits  float64
	capacity int
}

func buildStation(spec stationSpec) *world.Station {
	if spec.system == "" {
		spec.system = "system-1"
	}
	if spec.capacity == 0 {
		spec.capacity = 1000
	}
	return world.NewStation(
		spec.id,
		shared.Position{X: spec.x, Y: spec.y},
		spec.system,
		world.NewMarket(spec.credits),
		world.NewInventory(spec.capacity),
	)
}

func buildWorld(specs ...stationSpec) *world.World {
	w := world.New()
	for _, spec := range specs {
		w.AddStation(buildStation(spec))
	}
	return w
}

// newContext wires a behavior context over the fixture world with a seeded
// rng so jittered decisions are reproducible
func newContext(w *world.World, ship *world.Ship) *behavior.Context {
	return &behavior.Context{
		World:     w,
		Agent:     ship,
		Position:  ship.Position(),
		DeltaTime: 0.1,
		State:     make(behavior.State),
		Rand:      rand.New(rand.NewSource(7)),
	}
}

// captureRecorder is a TradeRecorder that keeps every entry for assertions
type captureRecorder struct {
	entries []*trading.TradeExecutionLog
}

func (r *captureRecorder) Record(entry *trading.TradeExecutionLog) {
	r.entries = append(r.entries, entry)
}
