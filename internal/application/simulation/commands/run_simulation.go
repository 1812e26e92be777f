package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/application/simulation"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
	"github.com/orbitalworks/stellarsim/internal/infrastructure/config"
)

// RunSimulationCommand starts a simulation run from config
type RunSimulationCommand struct {
	Simulation config.SimulationConfig
	AI         config.AIConfig
	Verbose    bool
}

// RunSimulationResponse reports what the run did
type RunSimulationResponse struct {
	Ticks    int
	Elapsed  time.Duration
	Agents   int
	Stations int
}

// RunSimulationHandler handles the RunSimulation command
type RunSimulationHandler struct {
	recorder trading.TradeRecorder
	clock    shared.Clock
}

// NewRunSimulationHandler creates a new RunSimulationHandler. The recorder
// may be nil; a nil clock defaults to the real clock.
func NewRunSimulationHandler(recorder trading.TradeRecorder, clock shared.Clock) *RunSimulationHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunSimulationHandler{recorder: recorder, clock: clock}
}

// Handle assembles the simulation and drives the tick loop until the
// configured duration elapses or the context is cancelled
func (h *RunSimulationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunSimulationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSimulationCommand")
	}
	if cmd.Simulation.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive")
	}

	assembly, err := simulation.Assemble(cmd.Simulation, cmd.AI, h.recorder, h.clock, cmd.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble simulation: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("info", "simulation starting", map[string]interface{}{
		"seed":     cmd.Simulation.Seed,
		"stations": len(assembly.World.Stations()),
		"agents":   len(assembly.World.Agents()),
	})

	interval := time.Duration(float64(time.Second) / cmd.Simulation.TickRate)
	dt := interval.Seconds()

	maxTicks := 0
	if cmd.Simulation.Duration > 0 {
		maxTicks = int(cmd.Simulation.Duration.Seconds() * cmd.Simulation.TickRate)
	}

	started := h.clock.Now()
	ticks := 0
	for maxTicks == 0 || ticks < maxTicks {
		select {
		case <-ctx.Done():
			logger.Log("info", "simulation interrupted", map[string]interface{}{"ticks": ticks})
			return h.response(assembly, ticks, started), nil
		default:
		}

		assembly.Scheduler.Tick(dt)
		assembly.World.Step(dt)
		ticks++

		h.clock.Sleep(interval)
	}

	logger.Log("info", "simulation finished", map[string]interface{}{"ticks": ticks})
	return h.response(assembly, ticks, started), nil
}

func (h *RunSimulationHandler) response(assembly *simulation.Assembly, ticks int, started time.Time) *RunSimulationResponse {
	return &RunSimulationResponse{
		Ticks:    ticks,
		Elapsed:  h.clock.Now().Sub(started),
		Agents:   len(assembly.World.Agents()),
		Stations: len(assembly.World.Stations()),
	}
}
