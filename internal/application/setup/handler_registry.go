// Package setup wires application handlers onto the mediator.
package setup

import (
	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/application/simulation/commands"
	"github.com/orbitalworks/stellarsim/internal/application/simulation/queries"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// HandlerRegistry holds the dependencies handlers are built from
type HandlerRegistry struct {
	ledgerRepo trading.TradeLogRepository
	recorder   trading.TradeRecorder
	clock      shared.Clock
}

// NewHandlerRegistry creates a registry. The ledger repository and recorder
// may be nil when no database is configured; a nil clock defaults to the
// real clock.
func NewHandlerRegistry(
	ledgerRepo trading.TradeLogRepository,
	recorder trading.TradeRecorder,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &HandlerRegistry{
		ledgerRepo: ledgerRepo,
		recorder:   recorder,
		clock:      clock,
	}
}

// RegisterAll registers every command and query handler with the mediator
func (r *HandlerRegistry) RegisterAll(m common.Mediator) error {
	if err := common.RegisterHandler[*commands.RunSimulationCommand](
		m, commands.NewRunSimulationHandler(r.recorder, r.clock)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*queries.FindRoutesQuery](
		m, queries.NewFindRoutesHandler(r.clock)); err != nil {
		return err
	}
	if r.ledgerRepo != nil {
		if err := common.RegisterHandler[*queries.TradeHistoryQuery](
			m, queries.NewTradeHistoryHandler(r.ledgerRepo)); err != nil {
			return err
		}
		if err := common.RegisterHandler[*queries.TradeSummaryQuery](
			m, queries.NewTradeSummaryHandler(r.ledgerRepo)); err != nil {
			return err
		}
	}
	return nil
}
