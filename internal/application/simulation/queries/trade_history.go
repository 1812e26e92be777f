package queries

import (
	"context"
	"fmt"

	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// TradeHistoryQuery asks for one agent's ledger entries, newest first
type TradeHistoryQuery struct {
	Agent  shared.EntityID
	Limit  int
	Offset int
}

// TradeHistoryResponse carries the ledger page
type TradeHistoryResponse struct {
	Entries []*trading.TradeExecutionLog
}

// TradeHistoryHandler handles the TradeHistory query
type TradeHistoryHandler struct {
	repo trading.TradeLogRepository
}

// NewTradeHistoryHandler creates a new TradeHistoryHandler
func NewTradeHistoryHandler(repo trading.TradeLogRepository) *TradeHistoryHandler {
	return &TradeHistoryHandler{repo: repo}
}

// Handle fetches the requested ledger page
func (h *TradeHistoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*TradeHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TradeHistoryQuery")
	}
	if query.Agent.IsZero() {
		return nil, fmt.Errorf("agent id is required")
	}

	entries, err := h.repo.FindByAgent(ctx, query.Agent, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade history: %w", err)
	}
	return &TradeHistoryResponse{Entries: entries}, nil
}

// TradeSummaryQuery asks for the per-resource ledger aggregate
type TradeSummaryQuery struct{}

// TradeSummaryResponse carries the aggregate rows
type TradeSummaryResponse struct {
	Summaries []*trading.TradeSummary
}

// TradeSummaryHandler handles the TradeSummary query
type TradeSummaryHandler struct {
	repo trading.TradeLogRepository
}

// NewTradeSummaryHandler creates a new TradeSummaryHandler
func NewTradeSummaryHandler(repo trading.TradeLogRepository) *TradeSummaryHandler {
	return &TradeSummaryHandler{repo: repo}
}

// Handle aggregates the ledger
func (h *TradeSummaryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*TradeSummaryQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *TradeSummaryQuery")
	}

	summaries, err := h.repo.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize trades: %w", err)
	}
	return &TradeSummaryResponse{Summaries: summaries}, nil
}
