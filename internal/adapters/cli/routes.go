package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orbitalworks/stellarsim/internal/application/simulation/queries"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// NewRoutesCommand creates the routes command
func NewRoutesCommand() *cobra.Command {
	var (
		at         string
		cargo      int
		scanRange  float64
		minProfit  float64
		limit      int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Scan a spawned world for trade routes",
		Long: `Spawn the configured world and print the ranked trade opportunities
around a position, the same scan traders run in-simulation.

Examples:
  stellarsim routes --at 0,0 --cargo 50 --range 15
  stellarsim routes --seed 7 --min-profit 2 --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(at, cargo, scanRange, minProfit, limit, seed)
		},
	}

	cmd.Flags().StringVar(&at, "at", "0,0", "Scan position as x,y")
	cmd.Flags().IntVar(&cargo, "cargo", 50, "Free cargo space to plan for")
	cmd.Flags().Float64Var(&scanRange, "range", 15, "Scan radius in AU")
	cmd.Flags().Float64Var(&minProfit, "min-profit", 0, "Minimum profit per unit")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum routes to print (0 for all)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "World generation seed (0 uses config)")

	return cmd
}

func runRoutes(at string, cargo int, scanRange, minProfit float64, limit int, seed int64) error {
	position, err := parsePosition(at)
	if err != nil {
		return err
	}

	m, cfg, _, cleanup, err := buildMediator()
	if err != nil {
		return err
	}
	defer cleanup()

	simCfg := cfg.Simulation
	if seed != 0 {
		simCfg.Seed = seed
	}

	response, err := m.Send(context.Background(), &queries.FindRoutesQuery{
		Simulation:  simCfg,
		AI:          cfg.AI,
		Position:    position,
		CargoSpace:  cargo,
		MaxDistance: scanRange,
		MinProfit:   minProfit,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	routes := response.(*queries.FindRoutesResponse).Routes
	if len(routes) == 0 {
		fmt.Println("No profitable routes found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tRESOURCE\tAMOUNT\tPROFIT\tFROM\tTO\tDIST")
	for _, route := range routes {
		fmt.Fprintf(w, "%.1f\t%s\t%d\t%.1f\t%s\t%s\t%.2f\n",
			route.Score(), route.Resource(), route.Amount(), route.TotalProfit(),
			route.Source(), route.Destination(), route.Distance())
	}
	return w.Flush()
}

func parsePosition(at string) (shared.Position, error) {
	parts := strings.SplitN(at, ",", 2)
	if len(parts) != 2 {
		return shared.Position{}, fmt.Errorf("invalid position %q, expected x,y", at)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return shared.Position{}, fmt.Errorf("invalid x coordinate %q", parts[0])
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return shared.Position{}, fmt.Errorf("invalid y coordinate %q", parts[1])
	}
	return shared.NewPosition(x, y)
}
