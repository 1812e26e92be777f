package navigation

import (
	"fmt"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// Command instructs the position-tracking collaborator to move an agent to
// target coordinates. Commands are transient: the collaborator consumes
// them, this core never retains one after issuing it.
type Command struct {
	TargetX float64
	TargetY float64

	// TrackBody, when set, asks the collaborator to follow the named moving
	// body instead of locking the literal coordinates.
	TrackBody string

	MaxSpeed     float64
	Acceleration float64
}

// NewCommand creates a navigation command with validation
func NewCommand(targetX, targetY, maxSpeed, acceleration float64) (*Command, error) {
	if maxSpeed <= 0 {
		return nil, shared.NewValidationError("maxSpeed", "must be positive")
	}
	if acceleration <= 0 {
		return nil, shared.NewValidationError("acceleration", "must be positive")
	}
	return &Command{
		TargetX:      targetX,
		TargetY:      targetY,
		MaxSpeed:     maxSpeed,
		Acceleration: acceleration,
	}, nil
}

// Target returns the commanded coordinates as a position
func (c *Command) Target() shared.Position {
	return shared.Position{X: c.TargetX, Y: c.TargetY}
}

func (c *Command) String() string {
	return fmt.Sprintf("Command{target=(%.2f, %.2f), speed=%.2f}", c.TargetX, c.TargetY, c.MaxSpeed)
}

// Status describes where an agent stands relative to its last command
type Status string

const (
	// StatusIdle means no command is in flight
	StatusIdle Status = "IDLE"

	// StatusInFlight means a command was issued and the agent is still moving
	StatusInFlight Status = "IN_FLIGHT"

	// StatusArrived means the agent reached the arrival threshold and the
	// arrival has not yet been acknowledged by the scheduler
	StatusArrived Status = "ARRIVED"
)
