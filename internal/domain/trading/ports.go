package trading

import (
	"context"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// RouteFinder discovers and ranks trade opportunities for an agent.
// Implemented in the application layer; behaviors receive it through their
// context so they stay free of infrastructure wiring.
type RouteFinder interface {
	// FindBestRoute returns the highest scoring opportunity for the agent,
	// serving from the per-agent cache when an unexpired entry exists.
	// Returns nil when nothing profitable is reachable.
	FindBestRoute(
		agent shared.EntityID,
		position shared.Position,
		cargoSpace int,
		maxDistance float64,
		minProfit float64,
	) *TradeOpportunity

	// FindAllRoutes enumerates opportunities near the position, best first,
	// up to limit
	FindAllRoutes(
		position shared.Position,
		cargoSpace int,
		maxDistance float64,
		minProfit float64,
		limit int,
	) []*TradeOpportunity

	// InvalidateCache forces recomputation on the agent's next query
	InvalidateCache(agent shared.EntityID)
}

// TradeRecorder receives completed buy/sell executions for the ledger.
// Behaviors treat recording as best-effort; a failed write never aborts the
// trade that already happened.
type TradeRecorder interface {
	Record(log *TradeExecutionLog)
}

// TradeLogRepository persists executed trades.
// Implemented in the adapter layer (persistence).
type TradeLogRepository interface {
	// Save persists a new execution log
	Save(ctx context.Context, log *TradeExecutionLog) error

	// FindByAgent retrieves logs for one agent, newest first, with
	// pagination (limit 0 means all)
	FindByAgent(ctx context.Context, agent shared.EntityID, limit, offset int) ([]*TradeExecutionLog, error)

	// Summarize aggregates total units and gross value per resource kind
	// across every logged execution
	Summarize(ctx context.Context) ([]*TradeSummary, error)
}

// TradeSummary is an aggregate row over the execution ledger
type TradeSummary struct {
	Resource   shared.Resource
	Executions int
	TotalUnits int
	GrossValue float64
}
