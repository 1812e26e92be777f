package world

import (
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// Inventory is station-side storage: a cargo hold plus per-resource
// minimum reserves that AvailableForTrade respects
type Inventory struct {
	*CargoHold
	reserves map[shared.Resource]int
}

// NewInventory creates a station inventory with the given capacity
func NewInventory(capacity int) *Inventory {
	return &Inventory{
		CargoHold: NewCargoHold(capacity),
		reserves:  make(map[shared.Resource]int),
	}
}

// SetReserve configures the minimum stock the station keeps off the market
func (i *Inventory) SetReserve(resource shared.Resource, units int) {
	if units < 0 {
		units = 0
	}
	i.reserves[resource] = units
}

// Reserve returns the configured minimum for a resource
func (i *Inventory) Reserve(resource shared.Resource) int {
	return i.reserves[resource]
}

// AvailableForTrade returns current stock minus the configured reserve,
// floored at zero
func (i *Inventory) AvailableForTrade(resource shared.Resource) int {
	available := i.Get(resource) - i.reserves[resource]
	return utils.Clamp(available, 0, i.Get(resource))
}

// Station is an in-memory stationary trading post
type Station struct {
	id        shared.EntityID
	position  shared.Position
	system    string
	market    *Market
	inventory *Inventory
}

// NewStation creates a station at a fixed position inside a planetary
// grouping ("system")
func NewStation(id shared.EntityID, position shared.Position, system string, market *Market, inventory *Inventory) *Station {
	if market == nil {
		market = NewMarket(0)
	}
	if inventory == nil {
		inventory = NewInventory(0)
	}
	return &Station{
		id:        id,
		position:  position,
		system:    system,
		market:    market,
		inventory: inventory,
	}
}

func (s *Station) ID() shared.EntityID {
	return s.id
}

func (s *Station) Position() shared.Position {
	return s.position
}

// SetPosition moves the station; the orbital collaborator calls this, the
// AI core only reads it
func (s *Station) SetPosition(position shared.Position) {
	s.position = position
}

func (s *Station) System() string {
	return s.system
}

// Market returns the station's pricing surface. The concrete type is
// returned by MarketState for fixtures that need to seed balances.
func (s *Station) Market() ports.Market {
	return s.market
}

func (s *Station) Inventory() ports.StationInventory {
	return s.inventory
}

// MarketState exposes the concrete market for world setup code
func (s *Station) MarketState() *Market {
	return s.market
}

// InventoryState exposes the concrete inventory for world setup code
func (s *Station) InventoryState() *Inventory {
	return s.inventory
}
