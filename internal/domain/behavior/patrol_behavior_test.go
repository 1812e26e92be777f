package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbitalworks/stellarsim/internal/adapters/world"
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

func patrolContext(t *testing.T, shipAt shared.Position, specs ...stationSpec) *behavior.Context {
	t.Helper()
	w := buildWorld(specs...)
	ship := world.NewShip(world.ShipConfig{ID: "ship-rover-1", Position: shipAt, CargoCapacity: 10})
	w.AddShip(ship)
	return newContext(w, ship)
}

func TestPatrolBehavior_Update_PicksNearestStation(t *testing.T) {
	// Arrange
	ctx := patrolContext(t, shared.Position{X: 0, Y: 0},
		stationSpec{id: "station-near", x: 1, y: 0},
		stationSpec{id: "station-far", x: 5, y: 0},
	)
	b := behavior.NewPatrolBehavior(behavior.PatrolConfig{})

	// Act
	result := b.Update(ctx)

	// Assert: cruise to the nearest at patrol speed
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.Equal(t, shared.EntityID("station-near"), result.TargetID)
	assert.Equal(t, 0.8, result.SpeedMultiplier)
}

func TestPatrolBehavior_Update_AlreadyAtNearestPicksAnother(t *testing.T) {
	// Arrange: parked on station-a's pad, three others in range
	ctx := patrolContext(t, shared.Position{X: 0, Y: 0},
		stationSpec{id: "station-a", x: 0, y: 0},
		stationSpec{id: "station-b", x: 2, y: 0},
		stationSpec{id: "station-c", x: 0, y: 3},
		stationSpec{id: "station-d", x: 4, y: 0},
	)
	b := behavior.NewPatrolBehavior(behavior.PatrolConfig{})

	// Act
	result := b.Update(ctx)

	// Assert: never re-selects the pad underfoot
	assert.Equal(t, behavior.StatusRunning, result.Status)
	assert.NotEqual(t, shared.EntityID("station-a"), result.TargetID)
}

func TestPatrolBehavior_Update_SoleStationUnderfootStillTargeted(t *testing.T) {
	// Arrange: one station and the agent is sitting on it
	ctx := patrolContext(t, shared.Position{X: 0, Y: 0},
		stationSpec{id: "station-only", x: 0, y: 0},
	)
	b := behavior.NewPatrolBehavior(behavior.PatrolConfig{})

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, shared.EntityID("station-only"), result.TargetID)
}

func TestPatrolBehavior_Update_NothingInRangeWaits(t *testing.T) {
	// Arrange
	ctx := patrolContext(t, shared.Position{X: 0, Y: 0},
		stationSpec{id: "station-remote", x: 50, y: 50},
	)
	b := behavior.NewPatrolBehavior(behavior.PatrolConfig{})

	// Act
	result := b.Update(ctx)

	// Assert
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.Equal(t, 5.0, result.WaitTime)
}

func TestPatrolBehavior_OnArrival_WaitsWithinConfiguredBracket(t *testing.T) {
	// Arrange
	ctx := patrolContext(t, shared.Position{X: 0, Y: 0},
		stationSpec{id: "station-a", x: 1, y: 0},
	)
	b := behavior.NewPatrolBehavior(behavior.PatrolConfig{})

	// Act
	result := b.OnArrival(ctx, "station-a")

	// Assert
	assert.Equal(t, behavior.StatusWaiting, result.Status)
	assert.GreaterOrEqual(t, result.WaitTime, 2.0)
	assert.LessOrEqual(t, result.WaitTime, 8.0)
}

func TestPatrolBehavior_IsLowestPriorityFallback(t *testing.T) {
	// Arrange
	patrol := behavior.NewPatrolBehavior(behavior.PatrolConfig{})
	trading := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)
	drone := behavior.NewDroneBehavior(behavior.DroneConfig{})
	waypoint := behavior.NewWaypointBehavior(behavior.WaypointConfig{})

	// Assert
	assert.Less(t, patrol.Priority(nil), trading.Priority(nil))
	assert.Less(t, trading.Priority(nil), waypoint.Priority(nil))
	assert.Less(t, waypoint.Priority(nil), drone.Priority(nil))
	assert.True(t, patrol.CanActivate(nil))
}
