// Package behavior implements the per-agent decision strategies of the
// simulation: trading, drone hauling, patrol, and operator-configured
// waypoint routes.
//
// Behaviors are stateless logic objects. All per-agent mutable data lives in
// the state blob carried by the Context; a behavior must never retain a
// reference to the context or its state across calls. The scheduler owns
// behavior selection and lifecycle (OnEnter/OnExit) around every switch.
package behavior

import (
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// Status classifies the outcome of a behavior invocation
type Status string

const (
	// StatusRunning means the behavior issued work (usually a navigation
	// target) and expects to be consulted again
	StatusRunning Status = "RUNNING"

	// StatusSuccess means the current activity finished
	StatusSuccess Status = "SUCCESS"

	// StatusFailure means the behavior could not act this tick; the
	// scheduler treats it as a no-op and reads Message for diagnostics
	StatusFailure Status = "FAILURE"

	// StatusWaiting means "try again later": the scheduler parks the agent
	// for WaitTime seconds
	StatusWaiting Status = "WAITING"
)

// Result is what a behavior hands back to the scheduler. It is transient:
// the scheduler translates it into a navigation command and timer updates,
// then discards it.
type Result struct {
	Status Status

	// HasTarget gates the target coordinates; a zero position is a valid
	// target so presence needs an explicit flag
	HasTarget bool
	TargetX   float64
	TargetY   float64

	// TargetBody, when set, asks navigation to track the named moving body
	// instead of fixed coordinates
	TargetBody string

	// TargetID is remembered by the scheduler and passed back to OnArrival
	TargetID shared.EntityID

	// SpeedMultiplier scales the agent's max speed and acceleration; zero
	// means full speed
	SpeedMultiplier float64

	// WaitTime parks the agent for this many seconds before its next
	// decision
	WaitTime float64

	Message string
}

// Behavior is the capability contract every concrete strategy implements
type Behavior interface {
	// Name identifies the behavior in agent state and logs
	Name() string

	// Update makes this tick's decision for the agent in ctx
	Update(ctx *Context) Result

	// OnEnter runs exactly once when the scheduler activates this behavior
	// for an agent
	OnEnter(ctx *Context)

	// OnExit runs exactly once when the scheduler deactivates this behavior
	OnExit(ctx *Context)

	// OnArrival runs once when a navigation command issued by this behavior
	// reports arrival at destination
	OnArrival(ctx *Context, destination shared.EntityID) Result

	// CanActivate gates eligibility; the scheduler never activates a
	// behavior whose precondition fails
	CanActivate(ctx *Context) bool

	// Priority ranks eligible behaviors when no behavior is active;
	// higher wins
	Priority(ctx *Context) float64
}

// Base provides the default capability set: always eligible, neutral
// priority, no-op lifecycle hooks, and OnArrival reporting success.
// Concrete behaviors embed it and override what they need.
type Base struct{}

func (Base) OnEnter(ctx *Context) {}

func (Base) OnExit(ctx *Context) {}

func (Base) OnArrival(ctx *Context, destination shared.EntityID) Result {
	return Result{Status: StatusSuccess}
}

func (Base) CanActivate(ctx *Context) bool {
	return true
}

func (Base) Priority(ctx *Context) float64 {
	return 0
}

// Result helpers

// Failure builds a FAILURE result with a diagnostic message
func Failure(message string) Result {
	return Result{Status: StatusFailure, Message: message}
}

// Waiting builds a WAITING result with a cooldown in seconds
func Waiting(seconds float64, message string) Result {
	return Result{Status: StatusWaiting, WaitTime: seconds, Message: message}
}

// NavigateTo builds a RUNNING result targeting a position, tagged with the
// destination entity so arrival can be attributed
func NavigateTo(pos shared.Position, target shared.EntityID, speedMultiplier float64) Result {
	return Result{
		Status:          StatusRunning,
		HasTarget:       true,
		TargetX:         pos.X,
		TargetY:         pos.Y,
		TargetID:        target,
		SpeedMultiplier: speedMultiplier,
	}
}
