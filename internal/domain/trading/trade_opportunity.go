package trading

import (
	"errors"
	"fmt"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// Scoring weights: total profit dominates, profit density over distance
// breaks the bulk-versus-haul tradeoff.
const (
	profitWeight   = 0.7
	densityWeight  = 0.3
	minScoreLength = 0.0001 // distance floor so co-located stations stay finite
)

// TradeOpportunity represents an immutable profitable trade between two
// stations for one resource kind.
//
// Price terminology (from the hauling agent's perspective):
//   - BuyPrice: what we PAY per unit at the source station
//   - SellPrice: what we RECEIVE per unit at the destination station
//
// Opportunities are created fresh on every route scan and never mutated;
// all fields are private with read-only getters to keep value object
// semantics.
type TradeOpportunity struct {
	source        shared.EntityID
	destination   shared.EntityID
	resource      shared.Resource
	amount        int
	buyPrice      float64
	sellPrice     float64
	profitPerUnit float64
	totalProfit   float64
	distance      float64
	score         float64
}

// NewTradeOpportunity creates an opportunity with validation. The derived
// values (profit per unit, total profit, score) are computed during
// construction.
//
// Returns an error if:
//   - source or destination id is empty, or they are the same station
//   - resource is empty
//   - amount is non-positive
//   - sell price does not exceed buy price (no profit possible)
//   - distance is negative
func NewTradeOpportunity(
	source shared.EntityID,
	destination shared.EntityID,
	resource shared.Resource,
	amount int,
	buyPrice float64,
	sellPrice float64,
	distance float64,
) (*TradeOpportunity, error) {
	if source.IsZero() {
		return nil, errors.New("source station required")
	}
	if destination.IsZero() {
		return nil, errors.New("destination station required")
	}
	if source == destination {
		return nil, errors.New("source and destination must differ")
	}
	if resource == "" {
		return nil, errors.New("resource kind required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", amount)
	}
	if sellPrice <= buyPrice {
		return nil, fmt.Errorf("sell price (%.2f) must exceed buy price (%.2f)", sellPrice, buyPrice)
	}
	if distance < 0 {
		return nil, fmt.Errorf("distance cannot be negative, got %.2f", distance)
	}

	profitPerUnit := sellPrice - buyPrice
	totalProfit := profitPerUnit * float64(amount)

	return &TradeOpportunity{
		source:        source,
		destination:   destination,
		resource:      resource,
		amount:        amount,
		buyPrice:      buyPrice,
		sellPrice:     sellPrice,
		profitPerUnit: profitPerUnit,
		totalProfit:   totalProfit,
		distance:      distance,
		score:         scoreFor(totalProfit, distance),
	}, nil
}

// scoreFor weighs absolute profit against profit per unit of travel
func scoreFor(totalProfit, distance float64) float64 {
	if distance < minScoreLength {
		distance = minScoreLength
	}
	return profitWeight*totalProfit + densityWeight*(totalProfit/distance)
}

// Getters - read-only access to maintain immutability

func (o *TradeOpportunity) Source() shared.EntityID {
	return o.source
}

func (o *TradeOpportunity) Destination() shared.EntityID {
	return o.destination
}

func (o *TradeOpportunity) Resource() shared.Resource {
	return o.resource
}

func (o *TradeOpportunity) Amount() int {
	return o.amount
}

func (o *TradeOpportunity) BuyPrice() float64 {
	return o.buyPrice
}

func (o *TradeOpportunity) SellPrice() float64 {
	return o.sellPrice
}

func (o *TradeOpportunity) ProfitPerUnit() float64 {
	return o.profitPerUnit
}

func (o *TradeOpportunity) TotalProfit() float64 {
	return o.totalProfit
}

func (o *TradeOpportunity) Distance() float64 {
	return o.distance
}

func (o *TradeOpportunity) Score() float64 {
	return o.score
}

func (o *TradeOpportunity) String() string {
	return fmt.Sprintf("TradeOpportunity{%s: %s -> %s, amount=%d, profit=%.0f, score=%.1f}",
		o.resource, o.source, o.destination, o.amount, o.totalProfit, o.score)
}
