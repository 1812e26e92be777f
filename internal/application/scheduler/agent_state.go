package scheduler

import (
	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// AgentBehaviorState is the per-agent mutable record owned exclusively by
// the scheduler. Behaviors only ever see the Blob, through the context
// passed into each call; they never hold a reference across calls.
type AgentBehaviorState struct {
	// ActiveBehavior is the name of the currently active behavior, empty
	// before the first activation
	ActiveBehavior string

	// Blob is the behavior-private key→value memory
	Blob behavior.State

	// WaitTimer is seconds remaining before the agent's next decision
	WaitTimer float64

	// LastTargetID is the entity the in-flight navigation command aims at,
	// handed to OnArrival when the command completes
	LastTargetID shared.EntityID

	// CommandInFlight tracks whether a navigation command this scheduler
	// issued is still outstanding
	CommandInFlight bool
}

func newAgentBehaviorState() *AgentBehaviorState {
	return &AgentBehaviorState{Blob: make(behavior.State)}
}
