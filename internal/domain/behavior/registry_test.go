package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
)

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	// Arrange
	patrol := behavior.NewPatrolBehavior(behavior.PatrolConfig{})
	trading := behavior.NewTradingBehavior(behavior.TradingConfig{}, nil, nil)

	// Act
	registry, err := behavior.NewRegistry(trading, patrol)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, "trading", registry.All()[0].Name())
	assert.Equal(t, "patrol", registry.All()[1].Name())

	got, ok := registry.Get("patrol")
	assert.True(t, ok)
	assert.Same(t, patrol, got)
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	// Act
	_, err := behavior.NewRegistry(
		behavior.NewPatrolBehavior(behavior.PatrolConfig{}),
		behavior.NewPatrolBehavior(behavior.PatrolConfig{}),
	)

	// Assert
	assert.Error(t, err)
}

func TestState_TypedAccessorsTolerateMissingKeys(t *testing.T) {
	// Arrange
	state := make(behavior.State)

	// Assert
	assert.Equal(t, "", state.GetString("missing"))
	assert.Equal(t, 0, state.GetInt("missing"))
	assert.Equal(t, 0.0, state.GetFloat("missing"))
	assert.True(t, state.GetEntityID("missing").IsZero())
}

func TestState_ClearPrefixLeavesOtherNamespaces(t *testing.T) {
	// Arrange
	state := make(behavior.State)
	state.Set("trading.phase", "traveling_to_buy")
	state.Set("trading.route_amount", 7)
	state.Set("waypoint.index", 2)

	// Act
	state.ClearPrefix("trading.")

	// Assert
	assert.Equal(t, "", state.GetString("trading.phase"))
	assert.Equal(t, 2, state.GetInt("waypoint.index"))
}
