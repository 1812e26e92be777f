package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/application/simulation/commands"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		seed     int64
		duration time.Duration
		traders  int
		drones   int
		patrols  int
		stations int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation",
		Long: `Run the simulation until the duration elapses or the process is
interrupted. World generation is seeded; the same seed replays the
same world.

Examples:
  stellarsim run --duration 2m
  stellarsim run --seed 7 --traders 5 --drones 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(seed, duration, stations, traders, drones, patrols)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "World generation seed (0 uses config)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Run length (0 runs until interrupted)")
	cmd.Flags().IntVar(&stations, "stations", 0, "Station count (0 uses config)")
	cmd.Flags().IntVar(&traders, "traders", 0, "Trader count (0 uses config)")
	cmd.Flags().IntVar(&drones, "drones", 0, "Drone count (0 uses config)")
	cmd.Flags().IntVar(&patrols, "patrols", 0, "Patrol count (0 uses config)")

	return cmd
}

func runSimulation(seed int64, duration time.Duration, stations, traders, drones, patrols int) error {
	m, cfg, _, cleanup, err := buildMediator()
	if err != nil {
		return err
	}
	defer cleanup()

	simCfg := cfg.Simulation
	if seed != 0 {
		simCfg.Seed = seed
	}
	if duration > 0 {
		simCfg.Duration = duration
	}
	if stations > 0 {
		simCfg.Stations = stations
	}
	if traders > 0 {
		simCfg.Traders = traders
	}
	if drones > 0 {
		simCfg.Drones = drones
	}
	if patrols > 0 {
		simCfg.Patrols = patrols
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, stdLogger{})

	response, err := m.Send(ctx, &commands.RunSimulationCommand{
		Simulation: simCfg,
		AI:         cfg.AI,
		Verbose:    verbose || cfg.Logging.Verbose,
	})
	if err != nil {
		return err
	}

	result := response.(*commands.RunSimulationResponse)
	fmt.Printf("Simulation complete: %d ticks over %s (%d agents, %d stations)\n",
		result.Ticks, result.Elapsed.Round(time.Millisecond), result.Agents, result.Stations)
	return nil
}

// stdLogger routes handler log messages to the standard logger
type stdLogger struct{}

func (stdLogger) Log(level, message string, metadata map[string]interface{}) {
	if len(metadata) > 0 {
		log.Printf("[%s] %s %v", level, message, metadata)
		return
	}
	log.Printf("[%s] %s", level, message)
}
