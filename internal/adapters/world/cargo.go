package world

import (
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/pkg/utils"
)

// CargoHold is the in-memory cargo storage shared by ships and stations.
// Transfers always report what actually moved, so callers can reconcile
// truncation when space or stock runs short.
type CargoHold struct {
	capacity int
	stock    map[shared.Resource]int
	used     int
}

// NewCargoHold creates an empty hold with the given capacity
func NewCargoHold(capacity int) *CargoHold {
	if capacity < 0 {
		capacity = 0
	}
	return &CargoHold{
		capacity: capacity,
		stock:    make(map[shared.Resource]int),
	}
}

func (c *CargoHold) Capacity() int {
	return c.capacity
}

func (c *CargoHold) Used() int {
	return c.used
}

func (c *CargoHold) FreeSpace() int {
	return c.capacity - c.used
}

func (c *CargoHold) Get(resource shared.Resource) int {
	return c.stock[resource]
}

// Contents returns a copy of the manifest, safe to iterate while mutating
// the hold
func (c *CargoHold) Contents() map[shared.Resource]int {
	out := make(map[shared.Resource]int, len(c.stock))
	for resource, units := range c.stock {
		out[resource] = units
	}
	return out
}

// Add stores up to amount units, truncated to free space, and returns the
// amount actually added
func (c *CargoHold) Add(resource shared.Resource, amount int) int {
	if amount <= 0 {
		return 0
	}
	added := utils.Min(amount, c.FreeSpace())
	if added <= 0 {
		return 0
	}
	c.stock[resource] += added
	c.used += added
	return added
}

// Remove takes up to amount units, truncated to current stock, and returns
// the amount actually removed
func (c *CargoHold) Remove(resource shared.Resource, amount int) int {
	if amount <= 0 {
		return 0
	}
	removed := utils.Min(amount, c.stock[resource])
	if removed <= 0 {
		return 0
	}
	c.stock[resource] -= removed
	if c.stock[resource] == 0 {
		delete(c.stock, resource)
	}
	c.used -= removed
	return removed
}

func (c *CargoHold) IsEmpty() bool {
	return c.used == 0
}
