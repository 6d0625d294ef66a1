package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulsemetrics/adpulse/internal/config"
	"github.com/pulsemetrics/adpulse/internal/output"
	"github.com/pulsemetrics/adpulse/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs and metric deltas",
	Long: `List recorded runs from the history database, most recent first,
and show how the blended metrics moved between the last two runs.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

// historyOutput is the JSON-serializable output for the history command.
type historyOutput struct {
	Runs   []store.RunRow      `json:"runs"`
	Deltas []store.MetricDelta `json:"deltas,omitempty"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	diff, err := db.Diff()
	if err != nil {
		return fmt.Errorf("computing deltas: %w", err)
	}

	if flagJSON {
		out := historyOutput{Runs: runs, Deltas: diff.Deltas}
		if out.Runs == nil {
			out.Runs = []store.RunRow{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render("No runs recorded yet. Run 'adpulse report' first."))
		return nil
	}

	fmt.Println(output.Section("Run History"))
	tbl := output.NewTable("DATE", "PERIOD", "STATUS", "TIER", "SPEND", "CAC", "ROAS", "LEADS")
	for _, run := range runs {
		tbl.AddRow(
			run.PeriodDate,
			run.PeriodType,
			run.Status,
			run.Tier,
			fmt.Sprintf("$%.0f", run.TotalSpend),
			fmt.Sprintf("$%.2f", run.BlendedCAC),
			fmt.Sprintf("%.2fx", run.BlendedROAS),
			fmt.Sprintf("%d", run.LeadCount),
		)
	}
	fmt.Print(tbl.Render())
	fmt.Println()

	if len(diff.Deltas) > 0 {
		fmt.Println(output.Section("Since Previous Run"))
		for _, d := range diff.Deltas {
			fmt.Printf(" %s %s\n",
				output.StyleLabel.Render(d.Name),
				renderDelta(d))
		}
		fmt.Println()
	}

	return nil
}

// renderDelta colors a metric movement. CAC moving down is good; spend
// and ROAS moving up are good.
func renderDelta(d store.MetricDelta) string {
	label := fmt.Sprintf("%.2f → %.2f (%+.2f)", d.Previous, d.Current, d.Delta)
	if d.Delta == 0 {
		return output.StyleMuted.Render(label)
	}

	improved := d.Delta > 0
	if d.Name == "blended_cac" {
		improved = d.Delta < 0
	}
	if improved {
		return output.StyleSuccess.Render(label)
	}
	return output.StyleError.Render(label)
}
