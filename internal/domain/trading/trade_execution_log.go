package trading

import (
	"errors"
	"time"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// TradeSide distinguishes the two halves of a trading cycle
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// TradeExecutionLog captures one completed buy or sell against a station.
// It is a snapshot for the ledger: what was planned, what actually
// transferred, and at what price. Pure data, no business logic.
type TradeExecutionLog struct {
	id            uint
	agent         shared.EntityID
	station       shared.EntityID
	side          TradeSide
	resource      shared.Resource
	plannedUnits  int
	actualUnits   int
	pricePerUnit  float64
	totalValue    float64
	executedAt    time.Time
}

// NewTradeExecutionLog creates a ledger entry with validation
func NewTradeExecutionLog(
	agent shared.EntityID,
	station shared.EntityID,
	side TradeSide,
	resource shared.Resource,
	plannedUnits int,
	actualUnits int,
	pricePerUnit float64,
	executedAt time.Time,
) (*TradeExecutionLog, error) {
	if agent.IsZero() {
		return nil, errors.New("agent id required")
	}
	if station.IsZero() {
		return nil, errors.New("station id required")
	}
	if side != TradeSideBuy && side != TradeSideSell {
		return nil, errors.New("side must be BUY or SELL")
	}
	if resource == "" {
		return nil, errors.New("resource kind required")
	}
	if actualUnits < 0 || plannedUnits < 0 {
		return nil, errors.New("units cannot be negative")
	}

	return &TradeExecutionLog{
		agent:        agent,
		station:      station,
		side:         side,
		resource:     resource,
		plannedUnits: plannedUnits,
		actualUnits:  actualUnits,
		pricePerUnit: pricePerUnit,
		totalValue:   pricePerUnit * float64(actualUnits),
		executedAt:   executedAt,
	}, nil
}

// ReconstructTradeExecutionLog rebuilds an entry from persisted data.
// Only the persistence adapter should call this.
func ReconstructTradeExecutionLog(
	id uint,
	agent shared.EntityID,
	station shared.EntityID,
	side TradeSide,
	resource shared.Resource,
	plannedUnits int,
	actualUnits int,
	pricePerUnit float64,
	executedAt time.Time,
) *TradeExecutionLog {
	return &TradeExecutionLog{
		id:           id,
		agent:        agent,
		station:      station,
		side:         side,
		resource:     resource,
		plannedUnits: plannedUnits,
		actualUnits:  actualUnits,
		pricePerUnit: pricePerUnit,
		totalValue:   pricePerUnit * float64(actualUnits),
		executedAt:   executedAt,
	}
}

func (l *TradeExecutionLog) ID() uint                  { return l.id }
func (l *TradeExecutionLog) Agent() shared.EntityID    { return l.agent }
func (l *TradeExecutionLog) Station() shared.EntityID  { return l.station }
func (l *TradeExecutionLog) Side() TradeSide           { return l.side }
func (l *TradeExecutionLog) Resource() shared.Resource { return l.resource }
func (l *TradeExecutionLog) PlannedUnits() int         { return l.plannedUnits }
func (l *TradeExecutionLog) ActualUnits() int          { return l.actualUnits }
func (l *TradeExecutionLog) PricePerUnit() float64     { return l.pricePerUnit }
func (l *TradeExecutionLog) TotalValue() float64       { return l.totalValue }
func (l *TradeExecutionLog) ExecutedAt() time.Time     { return l.executedAt }

// Shortfall reports how many planned units failed to transfer
func (l *TradeExecutionLog) Shortfall() int {
	return l.plannedUnits - l.actualUnits
}
