package world

import (
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// listing is one resource's price pair at a market
type listing struct {
	sellPrice float64 // what the station charges (a visitor pays this)
	buyPrice  float64 // what the station pays (a visitor receives this)
}

// Market is the in-memory economic surface of a station: a price board and
// a mutable credit balance
type Market struct {
	listings map[shared.Resource]listing
	credits  float64
}

// NewMarket creates a market with the given starting balance
func NewMarket(credits float64) *Market {
	return &Market{
		listings: make(map[shared.Resource]listing),
		credits:  credits,
	}
}

// SetPrices lists a resource on the board. A station both sells and buys
// every listed resource; unlisted resources are untradeable here.
func (m *Market) SetPrices(resource shared.Resource, sellPrice, buyPrice float64) {
	m.listings[resource] = listing{sellPrice: sellPrice, buyPrice: buyPrice}
}

// Unlist removes a resource from the board
func (m *Market) Unlist(resource shared.Resource) {
	delete(m.listings, resource)
}

func (m *Market) SellPrice(resource shared.Resource) (float64, bool) {
	l, ok := m.listings[resource]
	if !ok {
		return 0, false
	}
	return l.sellPrice, true
}

func (m *Market) BuyPrice(resource shared.Resource) (float64, bool) {
	l, ok := m.listings[resource]
	if !ok {
		return 0, false
	}
	return l.buyPrice, true
}

func (m *Market) Credits() float64 {
	return m.credits
}

func (m *Market) Deposit(amount float64) {
	if amount > 0 {
		m.credits += amount
	}
}

// Withdraw removes up to amount from the balance and returns what was
// actually taken
func (m *Market) Withdraw(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > m.credits {
		amount = m.credits
	}
	m.credits -= amount
	return amount
}
