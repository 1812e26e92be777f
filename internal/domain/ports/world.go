// Package ports defines the domain's interfaces to its external
// collaborators: position tracking, cargo storage, markets, station
// inventories, and the entity registry.
//
// These interfaces live in the domain layer so the behavior and scheduling
// code depends on contracts, not on the in-memory world adapter (or whatever
// else implements them). The adapter layer provides the concrete
// implementations.
package ports

import (
	"github.com/orbitalworks/stellarsim/internal/domain/navigation"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// CargoHold is the cargo storage surface of a mobile agent.
// Add and Remove return the amount actually transferred, which may be less
// than requested when space or stock runs short.
type CargoHold interface {
	Capacity() int
	Used() int
	FreeSpace() int
	Get(resource shared.Resource) int
	Contents() map[shared.Resource]int
	Add(resource shared.Resource, amount int) int
	Remove(resource shared.Resource, amount int) int
	IsEmpty() bool
}

// Market is the economic pricing surface of a station. Prices are absent
// for resources the station does not trade.
//
// Price terminology (from the visiting agent's perspective):
//   - SellPrice: what the station charges per unit, i.e. what we PAY
//   - BuyPrice: what the station pays per unit, i.e. what we RECEIVE
type Market interface {
	SellPrice(resource shared.Resource) (float64, bool)
	BuyPrice(resource shared.Resource) (float64, bool)

	// Credits is the station's mutable balance. Deposit adds funds;
	// Withdraw removes up to amount and returns what was actually taken.
	Credits() float64
	Deposit(amount float64)
	Withdraw(amount float64) float64
}

// StationInventory is station-side storage: cargo-shaped, plus a
// reserve-aware availability query used by haulers that must not strip a
// station below its configured minimum reserves.
type StationInventory interface {
	CargoHold
	AvailableForTrade(resource shared.Resource) int
}

// Station couples a station's identity and location with its market and
// inventory surfaces
type Station interface {
	ID() shared.EntityID
	Position() shared.Position
	System() string
	Market() Market
	Inventory() StationInventory
}

// Agent is the read surface of a mobile ship-like entity
type Agent interface {
	ID() shared.EntityID
	Position() shared.Position
	Cargo() CargoHold

	// MaxSpeed and Acceleration are the agent's base movement parameters;
	// the scheduler scales them by a behavior's speed multiplier before
	// issuing a navigation command.
	MaxSpeed() float64
	Acceleration() float64

	// PlayerControlled agents are skipped by the scheduler entirely
	PlayerControlled() bool

	// HomeStation returns the drone's home station, if the agent has one
	HomeStation() (shared.EntityID, bool)

	// WaypointRoute returns the operator-configured route, if any
	WaypointRoute() (*WaypointRoute, bool)
}

// WaypointOrder is one stop on a configured route. Empty resources mean
// "no explicit order at this stop" and trigger the auto-trade fallback.
type WaypointOrder struct {
	StationID shared.EntityID
	Buy       shared.Resource
	Sell      shared.Resource
}

// WaypointRoute is an ordered sequence of stops, optionally looping
type WaypointRoute struct {
	Orders []WaypointOrder
	Loop   bool
}

// Registry is the entity/component query surface over the live world
type Registry interface {
	Stations() []Station
	Station(id shared.EntityID) (Station, bool)
	Agents() []Agent
	Agent(id shared.EntityID) (Agent, bool)
}

// Navigator is the position/velocity tracking collaborator. It reads
// positions, accepts navigation commands, and reports arrival through a
// tick-observable status.
type Navigator interface {
	PositionOf(id shared.EntityID) (shared.Position, bool)

	// Navigate issues a command, replacing any in-flight one
	Navigate(id shared.EntityID, cmd *navigation.Command) error

	// Status reports the agent's progress on its last command
	Status(id shared.EntityID) navigation.Status

	// Acknowledge consumes a reported arrival, returning the agent to idle
	Acknowledge(id shared.EntityID)
}
