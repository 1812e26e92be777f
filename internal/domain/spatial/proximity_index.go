package spatial

import (
	"math"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// DefaultCellSize is the grid cell edge length in world units (AU).
// Half an AU keeps typical station neighbourhoods inside a handful of cells.
const DefaultCellSize = 0.5

// cellKey identifies one grid cell by its integer cell coordinates
type cellKey struct {
	cx int
	cy int
}

// ProximityIndex is a uniform-grid spatial partition over a dynamic point
// set. It maps world positions to the entity ids located near them and
// answers radius queries by scanning only the cells that can intersect the
// query circle.
//
// Invariants:
//   - an id appears in at most one cell at a time
//   - the cached position for an id equals the coordinates of the last
//     Update call for that id
//
// The cell size is fixed at construction; the world is bounded (hundreds of
// stations, not millions), so no dynamic resizing is needed. Worst case,
// with every point collapsed into one cell, queries degrade to a linear
// scan of that cell, accepted for the same reason.
//
// Not safe for concurrent use; the scheduler layer owns the single instance
// and mutates it from the tick loop only.
type ProximityIndex struct {
	cellSize  float64
	cells     map[cellKey]map[shared.EntityID]struct{}
	positions map[shared.EntityID]shared.Position
}

// NewProximityIndex creates an empty index with the given cell size.
// Non-positive cell sizes fall back to DefaultCellSize.
func NewProximityIndex(cellSize float64) *ProximityIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &ProximityIndex{
		cellSize:  cellSize,
		cells:     make(map[cellKey]map[shared.EntityID]struct{}),
		positions: make(map[shared.EntityID]shared.Position),
	}
}

// CellSize returns the configured cell edge length
func (idx *ProximityIndex) CellSize() float64 {
	return idx.cellSize
}

// Len returns the number of tracked entities
func (idx *ProximityIndex) Len() int {
	return len(idx.positions)
}

// Update upserts an entity at the given coordinates. If the entity was
// already tracked it is moved out of its previous cell first, so repeated
// calls with the same coordinates are idempotent. O(1) amortized.
func (idx *ProximityIndex) Update(id shared.EntityID, x, y float64) {
	newKey := idx.keyFor(x, y)

	if prev, ok := idx.positions[id]; ok {
		prevKey := idx.keyFor(prev.X, prev.Y)
		if prevKey == newKey {
			idx.positions[id] = shared.Position{X: x, Y: y}
			return
		}
		idx.removeFromCell(prevKey, id)
	}

	cell := idx.cells[newKey]
	if cell == nil {
		cell = make(map[shared.EntityID]struct{})
		idx.cells[newKey] = cell
	}
	cell[id] = struct{}{}
	idx.positions[id] = shared.Position{X: x, Y: y}
}

// Remove deletes an entity and its cached position. No-op if absent.
func (idx *ProximityIndex) Remove(id shared.EntityID) {
	pos, ok := idx.positions[id]
	if !ok {
		return
	}
	idx.removeFromCell(idx.keyFor(pos.X, pos.Y), id)
	delete(idx.positions, id)
}

// IDs returns every tracked entity id, in unspecified order
func (idx *ProximityIndex) IDs() []shared.EntityID {
	ids := make([]shared.EntityID, 0, len(idx.positions))
	for id := range idx.positions {
		ids = append(ids, id)
	}
	return ids
}

// GetPosition returns the last updated position for an entity
func (idx *ProximityIndex) GetPosition(id shared.EntityID) (shared.Position, bool) {
	pos, ok := idx.positions[id]
	return pos, ok
}

// GetNearby returns the ids of all entities within radius of (x, y),
// measured by true Euclidean distance. Only the cells covering a
// radius-sized square around the query point are scanned. The result is a
// fresh slice in unspecified order.
func (idx *ProximityIndex) GetNearby(x, y, radius float64) []shared.EntityID {
	if radius < 0 {
		return nil
	}

	center := shared.Position{X: x, Y: y}
	reach := int(math.Ceil(radius/idx.cellSize)) + 1
	origin := idx.keyFor(x, y)

	var result []shared.EntityID
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			cell := idx.cells[cellKey{cx: origin.cx + dx, cy: origin.cy + dy}]
			for id := range cell {
				if center.WithinRange(idx.positions[id], radius) {
					result = append(result, id)
				}
			}
		}
	}
	return result
}

func (idx *ProximityIndex) keyFor(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / idx.cellSize)),
		cy: int(math.Floor(y / idx.cellSize)),
	}
}

func (idx *ProximityIndex) removeFromCell(key cellKey, id shared.EntityID) {
	cell := idx.cells[key]
	if cell == nil {
		return
	}
	delete(cell, id)
	if len(cell) == 0 {
		delete(idx.cells, key)
	}
}
