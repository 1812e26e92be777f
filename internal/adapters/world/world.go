// Package world is the in-memory stand-in for the simulation's external
// collaborators: the entity registry, cargo and market surfaces, and the
// position-tracking navigator. The AI core only ever talks to the port
// interfaces, so a real engine could replace this package wholesale.
package world

import (
	"fmt"
	"sort"

	"github.com/orbitalworks/stellarsim/internal/domain/navigation"
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// ArrivalThreshold is how close to the target counts as arrived, in AU
const ArrivalThreshold = 0.05

// flight tracks one ship's outstanding navigation command
type flight struct {
	cmd     *navigation.Command
	arrived bool
}

// World owns every entity and implements both the Registry and Navigator
// ports. Movement integration is deliberately simple (straight lines at
// commanded speed) because kinematics are outside the AI core; this is
// just enough collaborator for the scheduler and tests to run against.
type World struct {
	stations map[shared.EntityID]*Station
	ships    map[shared.EntityID]*Ship
	flights  map[shared.EntityID]*flight
}

// Compile-time port checks.
var (
	_ ports.Registry  = (*World)(nil)
	_ ports.Navigator = (*World)(nil)
)

// New creates an empty world
func New() *World {
	return &World{
		stations: make(map[shared.EntityID]*Station),
		ships:    make(map[shared.EntityID]*Ship),
		flights:  make(map[shared.EntityID]*flight),
	}
}

// AddStation registers a station
func (w *World) AddStation(station *Station) {
	w.stations[station.ID()] = station
}

// AddShip registers a ship
func (w *World) AddShip(ship *Ship) {
	w.ships[ship.ID()] = ship
}

// RemoveStation despawns a station
func (w *World) RemoveStation(id shared.EntityID) {
	delete(w.stations, id)
}

// RemoveShip despawns a ship and forgets its flight
func (w *World) RemoveShip(id shared.EntityID) {
	delete(w.ships, id)
	delete(w.flights, id)
}

// Registry port

func (w *World) Stations() []ports.Station {
	out := make([]ports.Station, 0, len(w.stations))
	for _, station := range w.stations {
		out = append(out, station)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (w *World) Station(id shared.EntityID) (ports.Station, bool) {
	station, ok := w.stations[id]
	if !ok {
		return nil, false
	}
	return station, true
}

func (w *World) Agents() []ports.Agent {
	out := make([]ports.Agent, 0, len(w.ships))
	for _, ship := range w.ships {
		out = append(out, ship)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (w *World) Agent(id shared.EntityID) (ports.Agent, bool) {
	ship, ok := w.ships[id]
	if !ok {
		return nil, false
	}
	return ship, true
}

// Ship returns the concrete ship for world setup code and tests
func (w *World) Ship(id shared.EntityID) (*Ship, bool) {
	ship, ok := w.ships[id]
	return ship, ok
}

// StationByID returns the concrete station for world setup code and tests
func (w *World) StationByID(id shared.EntityID) (*Station, bool) {
	station, ok := w.stations[id]
	return station, ok
}

// Navigator port

func (w *World) PositionOf(id shared.EntityID) (shared.Position, bool) {
	if ship, ok := w.ships[id]; ok {
		return ship.Position(), true
	}
	if station, ok := w.stations[id]; ok {
		return station.Position(), true
	}
	return shared.Position{}, false
}

// Navigate issues a command for a ship, replacing any in-flight one
func (w *World) Navigate(id shared.EntityID, cmd *navigation.Command) error {
	if cmd == nil {
		return fmt.Errorf("nil navigation command")
	}
	if _, ok := w.ships[id]; !ok {
		return fmt.Errorf("unknown ship %s", id)
	}
	w.flights[id] = &flight{cmd: cmd}
	return nil
}

func (w *World) Status(id shared.EntityID) navigation.Status {
	f, ok := w.flights[id]
	if !ok {
		return navigation.StatusIdle
	}
	if f.arrived {
		return navigation.StatusArrived
	}
	return navigation.StatusInFlight
}

// Acknowledge consumes a reported arrival
func (w *World) Acknowledge(id shared.EntityID) {
	f, ok := w.flights[id]
	if ok && f.arrived {
		delete(w.flights, id)
	}
}

// Step advances every in-flight ship by dt seconds of straight-line motion
// and flags arrivals within the threshold
func (w *World) Step(dt float64) {
	for id, f := range w.flights {
		if f.arrived {
			continue
		}
		ship, ok := w.ships[id]
		if !ok {
			delete(w.flights, id)
			continue
		}

		target := f.cmd.Target()
		pos := ship.Position()
		distance := pos.DistanceTo(target)
		step := f.cmd.MaxSpeed * dt

		if distance <= step || distance <= ArrivalThreshold {
			ship.position = target
			f.arrived = true
			continue
		}
		ship.position = shared.Position{
			X: pos.X + (target.X-pos.X)/distance*step,
			Y: pos.Y + (target.Y-pos.Y)/distance*step,
		}
	}
}
