package queries

import (
	"context"
	"fmt"

	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/application/simulation"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
	"github.com/orbitalworks/stellarsim/internal/infrastructure/config"
)

// FindRoutesQuery asks for the ranked trade opportunities around a point in
// a freshly spawned world
type FindRoutesQuery struct {
	Simulation  config.SimulationConfig
	AI          config.AIConfig
	Position    shared.Position
	CargoSpace  int
	MaxDistance float64
	MinProfit   float64
	Limit       int
}

// FindRoutesResponse carries the ranked opportunities
type FindRoutesResponse struct {
	Routes []*trading.TradeOpportunity
}

// FindRoutesHandler handles the FindRoutes query
type FindRoutesHandler struct {
	clock shared.Clock
}

// NewFindRoutesHandler creates a new FindRoutesHandler
func NewFindRoutesHandler(clock shared.Clock) *FindRoutesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &FindRoutesHandler{clock: clock}
}

// Handle spawns the configured world and runs one route scan against it
func (h *FindRoutesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*FindRoutesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindRoutesQuery")
	}
	if query.CargoSpace <= 0 {
		return nil, fmt.Errorf("cargo space must be positive")
	}
	if query.MaxDistance <= 0 {
		return nil, fmt.Errorf("max distance must be positive")
	}

	assembly, err := simulation.Assemble(query.Simulation, query.AI, nil, h.clock, false)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble simulation: %w", err)
	}

	routes := assembly.Finder.FindAllRoutes(
		query.Position, query.CargoSpace, query.MaxDistance, query.MinProfit, query.Limit)

	return &FindRoutesResponse{Routes: routes}, nil
}
