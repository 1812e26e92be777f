package spatial_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/spatial"
)

func TestProximityIndex_UpdateAndGetPosition(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)

	idx.Update("station-1", 1.25, -3.75)

	pos, ok := idx.GetPosition("station-1")
	require.True(t, ok)
	assert.Equal(t, 1.25, pos.X)
	assert.Equal(t, -3.75, pos.Y)
}

func TestProximityIndex_UpdateIsIdempotent(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)

	idx.Update("ship-1", 2.0, 2.0)
	idx.Update("ship-1", 2.0, 2.0)

	assert.Equal(t, 1, idx.Len())
	nearby := idx.GetNearby(2.0, 2.0, 0.1)
	assert.Equal(t, []shared.EntityID{"ship-1"}, nearby)
}

func TestProximityIndex_UpdateMovesBetweenCells(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("ship-1", 0.0, 0.0)

	idx.Update("ship-1", 10.0, 10.0)

	// Only the new location should see the ship.
	assert.Empty(t, idx.GetNearby(0.0, 0.0, 1.0))
	assert.Equal(t, []shared.EntityID{"ship-1"}, idx.GetNearby(10.0, 10.0, 1.0))
	assert.Equal(t, 1, idx.Len())
}

func TestProximityIndex_Remove(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("ship-1", 1.0, 1.0)

	idx.Remove("ship-1")

	_, ok := idx.GetPosition("ship-1")
	assert.False(t, ok)
	assert.Empty(t, idx.GetNearby(1.0, 1.0, 5.0))
	assert.Equal(t, 0, idx.Len())
}

func TestProximityIndex_RemoveAbsentIsNoOp(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)

	assert.NotPanics(t, func() {
		idx.Remove("ghost")
	})
}

func TestProximityIndex_GetNearbyFiltersByEuclideanDistance(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("inside", 0.9, 0.0)
	// Inside the scanned cell square but outside the circle.
	idx.Update("corner", 0.9, 0.9)
	idx.Update("outside", 5.0, 0.0)

	nearby := idx.GetNearby(0.0, 0.0, 1.0)

	assert.ElementsMatch(t, []shared.EntityID{"inside"}, nearby)
}

func TestProximityIndex_GetNearbyIncludesBoundary(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("edge", 3.0, 0.0)

	nearby := idx.GetNearby(0.0, 0.0, 3.0)

	assert.Equal(t, []shared.EntityID{"edge"}, nearby)
}

func TestProximityIndex_GetNearbyIsRestartable(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("a", 0.1, 0.1)
	idx.Update("b", 0.2, 0.2)

	first := idx.GetNearby(0.0, 0.0, 1.0)
	second := idx.GetNearby(0.0, 0.0, 1.0)

	assert.ElementsMatch(t, first, second)
	assert.Len(t, second, 2)
}

// Grid correctness: for random point sets and query circles, GetNearby must
// agree exactly with a brute-force distance scan, whatever the cell size.
func TestProximityIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, cellSize := range []float64{0.1, 0.5, 2.0, 10.0} {
		t.Run(fmt.Sprintf("cellSize=%.1f", cellSize), func(t *testing.T) {
			idx := spatial.NewProximityIndex(cellSize)
			points := make(map[shared.EntityID]shared.Position)

			for i := 0; i < 200; i++ {
				id := shared.EntityID(fmt.Sprintf("p%d", i))
				pos := shared.Position{
					X: rng.Float64()*40 - 20,
					Y: rng.Float64()*40 - 20,
				}
				points[id] = pos
				idx.Update(id, pos.X, pos.Y)
			}

			for q := 0; q < 25; q++ {
				qx := rng.Float64()*40 - 20
				qy := rng.Float64()*40 - 20
				radius := rng.Float64() * 8
				center := shared.Position{X: qx, Y: qy}

				var expected []shared.EntityID
				for id, pos := range points {
					if center.WithinRange(pos, radius) {
						expected = append(expected, id)
					}
				}

				actual := idx.GetNearby(qx, qy, radius)
				assert.ElementsMatch(t, expected, actual,
					"query (%.2f, %.2f) r=%.2f", qx, qy, radius)
			}
		})
	}
}

func TestProximityIndex_NegativeRadiusReturnsNothing(t *testing.T) {
	idx := spatial.NewProximityIndex(0.5)
	idx.Update("a", 0.0, 0.0)

	assert.Empty(t, idx.GetNearby(0.0, 0.0, -1.0))
}

func TestProximityIndex_DefaultCellSizeOnInvalidInput(t *testing.T) {
	idx := spatial.NewProximityIndex(0)

	assert.Equal(t, spatial.DefaultCellSize, idx.CellSize())
}
