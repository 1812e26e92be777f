package shared

import (
	"fmt"
	"math"
)

// Position is a point in the 2D world plane, in astronomical units.
// Positions are owned by the position-tracking collaborator; this core only
// reads them, so the value is plain data rather than an entity.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition creates a position, rejecting non-finite coordinates
func NewPosition(x, y float64) (Position, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Position{}, NewValidationError("x", "must be finite")
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Position{}, NewValidationError("y", "must be finite")
	}
	return Position{X: x, Y: y}, nil
}

// DistanceTo calculates Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo calculates squared Euclidean distance, avoiding the
// square root for pure comparisons (the proximity index filters with this)
func (p Position) DistanceSquaredTo(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx*dx + dy*dy
}

// WithinRange checks whether another position lies within radius of this one
func (p Position) WithinRange(other Position, radius float64) bool {
	return p.DistanceSquaredTo(other) <= radius*radius
}

func (p Position) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
