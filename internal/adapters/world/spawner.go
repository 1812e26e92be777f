package world

import (
	"fmt"
	"math/rand"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// SpawnConfig controls procedural world generation
type SpawnConfig struct {
	Seed           int64
	Stations       int
	Traders        int
	Drones         int
	Patrols        int
	FieldRadius    float64 // stations land within this radius of origin
	SystemCount    int
	StartCredits   float64 // per-market opening balance
	StationStorage int
}

func (c SpawnConfig) withDefaults() SpawnConfig {
	if c.Stations <= 0 {
		c.Stations = 6
	}
	if c.FieldRadius <= 0 {
		c.FieldRadius = 12
	}
	if c.SystemCount <= 0 {
		c.SystemCount = 2
	}
	if c.StartCredits <= 0 {
		c.StartCredits = 5000
	}
	if c.StationStorage <= 0 {
		c.StationStorage = 500
	}
	return c
}

// Spawn builds a populated world from a seed. The same seed always yields
// the same layout, prices, and stock, which keeps scripted runs replayable.
func Spawn(cfg SpawnConfig) *World {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	w := New()

	stations := make([]*Station, 0, cfg.Stations)
	for i := 0; i < cfg.Stations; i++ {
		station := spawnStation(rng, cfg, i)
		w.AddStation(station)
		stations = append(stations, station)
	}

	for i := 0; i < cfg.Traders; i++ {
		label := fmt.Sprintf("TRADER-%d", i+1)
		w.AddShip(spawnShip(rng, cfg, label, stations))
	}
	for i := 0; i < cfg.Drones; i++ {
		label := fmt.Sprintf("DRONE-%d", i+1)
		ship := spawnShip(rng, cfg, label, stations)
		ship.home = stations[rng.Intn(len(stations))].ID()
		w.AddShip(ship)
	}
	for i := 0; i < cfg.Patrols; i++ {
		label := fmt.Sprintf("PATROL-%d", i+1)
		w.AddShip(spawnShip(rng, cfg, label, stations))
	}
	return w
}

func spawnStation(rng *rand.Rand, cfg SpawnConfig, index int) *Station {
	id := shared.EntityID(utils.GenerateEntityID("station", fmt.Sprintf("ST-%d", index+1)))
	position := shared.Position{
		X: (rng.Float64()*2 - 1) * cfg.FieldRadius,
		Y: (rng.Float64()*2 - 1) * cfg.FieldRadius,
	}
	system := fmt.Sprintf("system-%d", index%cfg.SystemCount+1)

	market := NewMarket(cfg.StartCredits)
	inventory := NewInventory(cfg.StationStorage)
	for _, resource := range shared.AllResources() {
		// Roughly half the board listed per station so price spreads
		// between stations exist for traders to exploit.
		if rng.Float64() < 0.5 {
			continue
		}
		base := 5 + rng.Float64()*20
		spread := 1 + rng.Float64()*0.5
		market.SetPrices(resource, base*spread, base)
		inventory.Add(resource, rng.Intn(cfg.StationStorage/4))
	}
	return NewStation(id, position, system, market, inventory)
}

func spawnShip(rng *rand.Rand, cfg SpawnConfig, label string, stations []*Station) *Ship {
	start := stations[rng.Intn(len(stations))].Position()
	return NewShip(ShipConfig{
		ID:            shared.EntityID(utils.GenerateEntityID("ship", label)),
		Position:      start,
		CargoCapacity: 20 + rng.Intn(40),
		MaxSpeed:      0.8 + rng.Float64()*0.6,
		Acceleration:  0.3 + rng.Float64()*0.4,
	})
}
