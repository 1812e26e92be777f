// Package cli implements the stellarsim command line interface. Commands
// talk to the application layer exclusively through the mediator.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/orbitalworks/stellarsim/internal/adapters/persistence"
	"github.com/orbitalworks/stellarsim/internal/application/common"
	"github.com/orbitalworks/stellarsim/internal/application/setup"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
	"github.com/orbitalworks/stellarsim/internal/infrastructure/config"
	"github.com/orbitalworks/stellarsim/internal/infrastructure/database"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stellarsim",
		Short: "Stellarsim - autonomous space trading simulation",
		Long: `Stellarsim runs an autonomous space trading simulation: AI agents
discover trade routes between drifting stations, haul cargo, restock
their home bases, and patrol the field.

Examples:
  stellarsim run --duration 2m --seed 7
  stellarsim routes --at 0,0 --cargo 50 --range 15
  stellarsim ledger history ship-TRADER-1-a3f8e2b1
  stellarsim ledger summary`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewRoutesCommand())
	rootCmd.AddCommand(NewLedgerCommand())

	return rootCmd
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildMediator loads config and wires the mediator with a ledger-backed
// handler set. The returned cleanup closes the database.
func buildMediator() (common.Mediator, *config.Config, trading.TradeLogRepository, func(), error) {
	cfg := config.LoadConfigOrDefault(configPath)

	var (
		db      *gorm.DB
		repo    trading.TradeLogRepository
		cleanup = func() {}
	)
	opened, err := database.NewConnection(&cfg.Database)
	if err != nil {
		// The simulation runs fine without a ledger; just say so.
		log.Printf("trade ledger unavailable: %v", err)
	} else {
		db = opened
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		repo = persistence.NewGormTradeLogRepository(db)
		cleanup = func() { _ = database.Close(db) }
	}

	var recorder trading.TradeRecorder
	if repo != nil {
		recorder = persistence.NewLedgerRecorder(repo)
	}

	m := common.NewMediator()
	registry := setup.NewHandlerRegistry(repo, recorder, nil)
	if err := registry.RegisterAll(m); err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	return m, cfg, repo, cleanup, nil
}
