// Package scheduler drives every AI agent once per simulation tick: it
// resolves arrivals and wait timers, selects the active behavior by
// capability and priority, invokes it, and turns the result into navigation
// commands and cached state.
package scheduler

import (
	"log"
	"math/rand"
	"sort"

	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/navigation"
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// Scheduler owns all per-agent AI state and the behavior registry. It runs
// single-threaded inside the tick loop; agents are processed sequentially
// in a stable order, and mutations made by an earlier agent are visible to
// later agents in the same tick. Trade fairness between agents competing
// for the same station is deliberately not guaranteed: first processed,
// first served.
type Scheduler struct {
	registry  ports.Registry
	navigator ports.Navigator
	behaviors *behavior.Registry
	routes    trading.RouteFinder // may be nil
	rng       *rand.Rand

	states map[shared.EntityID]*AgentBehaviorState

	// Verbose surfaces behavior diagnostic messages through the standard
	// logger; failures are never escalated beyond that
	Verbose bool
}

// New creates a scheduler. The route finder may be nil (behaviors fall back
// to local scans); a nil rng gets seeded from the default source.
func New(
	registry ports.Registry,
	navigator ports.Navigator,
	behaviors *behavior.Registry,
	routes trading.RouteFinder,
	rng *rand.Rand,
) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Scheduler{
		registry:  registry,
		navigator: navigator,
		behaviors: behaviors,
		routes:    routes,
		rng:       rng,
		states:    make(map[shared.EntityID]*AgentBehaviorState),
	}
}

// StateOf returns the scheduler's record for an agent, or nil if the agent
// has never been processed. Exposed for diagnostics and tests.
func (s *Scheduler) StateOf(id shared.EntityID) *AgentBehaviorState {
	return s.states[id]
}

// Tick runs one scheduling pass over every agent. dt is the tick delta in
// seconds. Agents are visited in id order; stable, though callers must not
// rely on which agent trades first beyond that stability.
func (s *Scheduler) Tick(dt float64) {
	agents := s.registry.Agents()
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID() < agents[j].ID() })

	live := make(map[shared.EntityID]struct{}, len(agents))
	for _, agent := range agents {
		live[agent.ID()] = struct{}{}
		if agent.PlayerControlled() {
			continue
		}
		s.tickAgent(agent, dt)
	}

	// Drop state for despawned agents.
	for id := range s.states {
		if _, ok := live[id]; !ok {
			delete(s.states, id)
		}
	}
}

func (s *Scheduler) tickAgent(agent ports.Agent, dt float64) {
	state, ok := s.states[agent.ID()]
	if !ok {
		state = newAgentBehaviorState()
		s.states[agent.ID()] = state
	}

	// 1. Wait timers are cooperative soft-delays, decremented per tick.
	if state.WaitTimer > 0 {
		state.WaitTimer -= dt
		if state.WaitTimer > 0 {
			return
		}
		state.WaitTimer = 0
	}

	ctx := s.contextFor(agent, state, dt)

	// 2./3. An in-flight navigation command either completed (run
	// OnArrival, nothing else this tick) or is still going (leave it).
	if state.CommandInFlight {
		switch s.navigator.Status(agent.ID()) {
		case navigation.StatusArrived:
			s.navigator.Acknowledge(agent.ID())
			state.CommandInFlight = false
			if active, ok := s.behaviors.Get(state.ActiveBehavior); ok {
				result := active.OnArrival(ctx, state.LastTargetID)
				s.applyResult(agent, state, result)
			}
			return
		case navigation.StatusInFlight:
			return
		default:
			// Command was dropped externally; fall through to a fresh
			// decision.
			state.CommandInFlight = false
		}
	}

	// 4. Select a behavior and let it decide.
	active := s.selectBehavior(ctx, state)
	if active == nil {
		return
	}
	result := active.Update(ctx)
	s.applyResult(agent, state, result)
}

// selectBehavior keeps the current behavior while its precondition holds;
// otherwise it picks the eligible behavior with the highest priority,
// running the OnExit/OnEnter pair exactly once around the switch. The very
// first activation gets its OnEnter too.
func (s *Scheduler) selectBehavior(ctx *behavior.Context, state *AgentBehaviorState) behavior.Behavior {
	if state.ActiveBehavior != "" {
		if current, ok := s.behaviors.Get(state.ActiveBehavior); ok && current.CanActivate(ctx) {
			return current
		}
	}

	var best behavior.Behavior
	bestPriority := 0.0
	for _, candidate := range s.behaviors.All() {
		if !candidate.CanActivate(ctx) {
			continue
		}
		if best == nil || candidate.Priority(ctx) > bestPriority {
			best = candidate
			bestPriority = candidate.Priority(ctx)
		}
	}
	if best == nil {
		return nil
	}
	if best.Name() == state.ActiveBehavior {
		return best
	}

	if old, ok := s.behaviors.Get(state.ActiveBehavior); ok {
		old.OnExit(ctx)
	}
	state.ActiveBehavior = best.Name()
	best.OnEnter(ctx)
	return best
}

// applyResult translates a behavior result into scheduler state and, when
// target coordinates are present, a navigation command scaled by the
// result's speed multiplier. FAILURE is "nothing to do this tick": logged
// when verbose, never escalated.
func (s *Scheduler) applyResult(agent ports.Agent, state *AgentBehaviorState, result behavior.Result) {
	if result.WaitTime > 0 {
		state.WaitTimer = result.WaitTime
	}
	if !result.TargetID.IsZero() {
		state.LastTargetID = result.TargetID
	}

	if result.Status == behavior.StatusFailure {
		if s.Verbose && result.Message != "" {
			log.Printf("agent %s [%s]: %s", agent.ID(), state.ActiveBehavior, result.Message)
		}
		return
	}

	if result.HasTarget {
		multiplier := result.SpeedMultiplier
		if multiplier <= 0 {
			multiplier = 1.0
		}
		cmd := &navigation.Command{
			TargetX:      result.TargetX,
			TargetY:      result.TargetY,
			TrackBody:    result.TargetBody,
			MaxSpeed:     agent.MaxSpeed() * multiplier,
			Acceleration: agent.Acceleration() * multiplier,
		}
		if err := s.navigator.Navigate(agent.ID(), cmd); err != nil {
			if s.Verbose {
				log.Printf("agent %s: navigation rejected: %v", agent.ID(), err)
			}
			return
		}
		state.CommandInFlight = true
	}
}

func (s *Scheduler) contextFor(agent ports.Agent, state *AgentBehaviorState, dt float64) *behavior.Context {
	return &behavior.Context{
		World:     s.registry,
		Routes:    s.routes,
		Agent:     agent,
		Position:  agent.Position(),
		DeltaTime: dt,
		State:     state.Blob,
		Rand:      s.rng,
	}
}
