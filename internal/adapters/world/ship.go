package world

import (
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// Ship is an in-memory mobile agent
type Ship struct {
	id               shared.EntityID
	position         shared.Position
	cargo            *CargoHold
	maxSpeed         float64
	acceleration     float64
	playerControlled bool

	home  shared.EntityID     // zero when the ship is not a drone
	route *ports.WaypointRoute // nil when no route is configured
}

// ShipConfig describes a ship to spawn
type ShipConfig struct {
	ID               shared.EntityID
	Position         shared.Position
	CargoCapacity    int
	MaxSpeed         float64
	Acceleration     float64
	PlayerControlled bool
	HomeStation      shared.EntityID
	Route            *ports.WaypointRoute
}

// NewShip creates a ship from its config, applying movement defaults
func NewShip(cfg ShipConfig) *Ship {
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = 1.0
	}
	if cfg.Acceleration <= 0 {
		cfg.Acceleration = 0.5
	}
	return &Ship{
		id:               cfg.ID,
		position:         cfg.Position,
		cargo:            NewCargoHold(cfg.CargoCapacity),
		maxSpeed:         cfg.MaxSpeed,
		acceleration:     cfg.Acceleration,
		playerControlled: cfg.PlayerControlled,
		home:             cfg.HomeStation,
		route:            cfg.Route,
	}
}

func (s *Ship) ID() shared.EntityID {
	return s.id
}

func (s *Ship) Position() shared.Position {
	return s.position
}

func (s *Ship) Cargo() ports.CargoHold {
	return s.cargo
}

// CargoState exposes the concrete hold for world setup code
func (s *Ship) CargoState() *CargoHold {
	return s.cargo
}

func (s *Ship) MaxSpeed() float64 {
	return s.maxSpeed
}

func (s *Ship) Acceleration() float64 {
	return s.acceleration
}

func (s *Ship) PlayerControlled() bool {
	return s.playerControlled
}

func (s *Ship) HomeStation() (shared.EntityID, bool) {
	return s.home, !s.home.IsZero()
}

func (s *Ship) WaypointRoute() (*ports.WaypointRoute, bool) {
	return s.route, s.route != nil
}

// SetRoute installs or clears an operator-configured route
func (s *Ship) SetRoute(route *ports.WaypointRoute) {
	s.route = route
}
