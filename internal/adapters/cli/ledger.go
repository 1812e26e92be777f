package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitalworks/stellarsim/internal/application/simulation/queries"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Trade ledger operations",
		Long: `Inspect the persisted trade ledger.

Every buy and sell an AI trader executes is recorded with the planned
and actual units, price, and timestamp. Requires a file or server
database; the default in-memory ledger does not survive between runs.

Examples:
  stellarsim ledger history ship-TRADER-1-a3f8e2b1 --limit 20
  stellarsim ledger summary`,
	}

	cmd.AddCommand(newLedgerHistoryCommand())
	cmd.AddCommand(newLedgerSummaryCommand())

	return cmd
}

func newLedgerHistoryCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "history <agent-id>",
		Short: "List one agent's executed trades, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerHistory(shared.EntityID(args[0]), limit, offset)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")

	return cmd
}

func runLedgerHistory(agent shared.EntityID, limit, offset int) error {
	m, _, repo, cleanup, err := buildMediator()
	if err != nil {
		return err
	}
	defer cleanup()
	if repo == nil {
		return fmt.Errorf("no trade ledger database configured")
	}

	response, err := m.Send(context.Background(), &queries.TradeHistoryQuery{
		Agent:  agent,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	entries := response.(*queries.TradeHistoryResponse).Entries
	if len(entries) == 0 {
		fmt.Printf("No trades recorded for %s.\n", agent)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSIDE\tRESOURCE\tUNITS\tPRICE\tVALUE\tSTATION")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%s\n",
			entry.ExecutedAt().Format(time.RFC3339), entry.Side(), entry.Resource(),
			entry.ActualUnits(), entry.PricePerUnit(), entry.TotalValue(), entry.Station())
	}
	return w.Flush()
}

func newLedgerSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Aggregate the ledger per resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerSummary()
		},
	}
}

func runLedgerSummary() error {
	m, _, repo, cleanup, err := buildMediator()
	if err != nil {
		return err
	}
	defer cleanup()
	if repo == nil {
		return fmt.Errorf("no trade ledger database configured")
	}

	response, err := m.Send(context.Background(), &queries.TradeSummaryQuery{})
	if err != nil {
		return err
	}

	summaries := response.(*queries.TradeSummaryResponse).Summaries
	if len(summaries) == 0 {
		fmt.Println("The ledger is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RESOURCE\tEXECUTIONS\tUNITS\tGROSS VALUE")
	for _, summary := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\n",
			summary.Resource, summary.Executions, summary.TotalUnits, summary.GrossValue)
	}
	return w.Flush()
}
