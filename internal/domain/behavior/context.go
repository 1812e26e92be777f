package behavior

import (
	"math/rand"
	"strings"

	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// Context carries everything a behavior may consult for one invocation.
// It is rebuilt by the scheduler every call; behaviors must not retain it.
type Context struct {
	// World is the entity/component query surface
	World ports.Registry

	// Routes is the route finder, or nil when none is wired; behaviors
	// that trade fall back to their own local scan in that case
	Routes trading.RouteFinder

	// Agent is the entity being decided for, at its current position
	Agent    ports.Agent
	Position shared.Position

	// DeltaTime is the tick delta in seconds
	DeltaTime float64

	// State is the agent's behavior-private memory. Each behavior keeps its
	// keys under its own prefix and wraps access in a typed accessor.
	State State

	// Rand is the scheduler-owned randomness source, injected so patrol
	// jitter is reproducible in tests
	Rand *rand.Rand
}

// State is the free-form per-agent key→value blob. Different behaviors need
// different shapes, so the boundary type stays dynamic; the typed accessors
// in each behavior file keep the string keys from leaking everywhere.
type State map[string]any

// Set stores a value
func (s State) Set(key string, value any) {
	s[key] = value
}

// Delete removes keys
func (s State) Delete(keys ...string) {
	for _, key := range keys {
		delete(s, key)
	}
}

// ClearPrefix removes every key under a behavior's namespace
func (s State) ClearPrefix(prefix string) {
	for key := range s {
		if strings.HasPrefix(key, prefix) {
			delete(s, key)
		}
	}
}

// GetString returns the string at key, or "" when absent or mistyped
func (s State) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// GetInt returns the int at key, tolerating float64 storage
func (s State) GetInt(key string) int {
	switch v := s[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// GetFloat returns the float at key, tolerating int storage
func (s State) GetFloat(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// GetEntityID returns the entity id at key, or the zero id
func (s State) GetEntityID(key string) shared.EntityID {
	switch v := s[key].(type) {
	case shared.EntityID:
		return v
	case string:
		return shared.EntityID(v)
	}
	return ""
}
