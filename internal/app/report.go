package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulsemetrics/adpulse/internal/config"
	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
	"github.com/pulsemetrics/adpulse/internal/notify"
	"github.com/pulsemetrics/adpulse/internal/output"
	"github.com/pulsemetrics/adpulse/internal/policy"
	"github.com/pulsemetrics/adpulse/internal/provider"
	"github.com/pulsemetrics/adpulse/internal/recommend"
	"github.com/pulsemetrics/adpulse/internal/report"
	"github.com/pulsemetrics/adpulse/internal/sink"
	"github.com/pulsemetrics/adpulse/internal/store"
)

var (
	reportMonthly  bool
	reportDays     int
	reportTestMode bool
	reportOut      string
	reportNoStore  bool
	reportNotify   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report for the current period",
	Long: `Gather channel metrics and lead records, blend them, evaluate the
decision policy, analyze the funnel, and assemble a full report.

The report is written as JSON to the output directory and recorded in the
run history database. A notification digest is printed to stderr, or posted
to the configured webhook with --notify.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportMonthly, "monthly", false, "Generate a monthly report (default: weekly)")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "Override the reporting window in days")
	reportCmd.Flags().BoolVar(&reportTestMode, "test-mode", false, "Use built-in fixture data instead of the data directory")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Override the report output directory")
	reportCmd.Flags().BoolVar(&reportNoStore, "no-store", false, "Skip recording the run in the history database")
	reportCmd.Flags().BoolVar(&reportNotify, "notify", false, "Post the digest to the configured webhook")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	var p provider.Provider
	if reportTestMode {
		p = provider.NewFixture()
	} else {
		p = provider.NewFileProvider(cfg.DataDir)
	}

	snap := provider.Gather(cmd.Context(), p)

	stages := cfg.StageDefinitions()

	blended := metrics.Normalize(snap.Channels)
	values := blended.Values()
	values[metrics.KeyLeadCount] = float64(len(snap.Leads))
	values[metrics.KeyLeadScoreAvg] = funnel.AverageLeadScore(stages, snap.Leads)

	decision := policy.Resolve(cfg.RulePolicy(), values)

	stats := funnel.Analyze(stages, snap.Leads)
	bottlenecks := funnel.Detect(stats, cfg.Funnel.WarningThreshold, cfg.Funnel.CriticalThreshold)

	sampleAdequate := len(snap.Leads) >= cfg.MinimumSampleSize

	engine := recommend.NewEngine()
	recommendations := engine.Run(&recommend.Input{
		Blended:            blended,
		Decision:           decision,
		Bottlenecks:        bottlenecks,
		Targets:            recommend.Targets{MaxCAC: cfg.Targets.MaxCAC, MinROAS: cfg.Targets.MinROAS},
		SampleSizeAdequate: sampleAdequate,
		LeadCount:          len(snap.Leads),
	})

	rep := report.Assemble(reportPeriod(), blended, values, decision, stats,
		bottlenecks, recommendations, sampleAdequate, len(snap.Leads))
	rep.RunID = uuid.NewString()
	rep.GeneratedAt = time.Now().UTC()

	outDir := cfg.OutDir
	if reportOut != "" {
		outDir = reportOut
	}
	path, err := sink.Write(outDir, rep)
	if err != nil {
		return fmt.Errorf("persisting report: %w", err)
	}

	if !reportNoStore {
		db, err := store.Open(config.DBPath())
		if err != nil {
			return fmt.Errorf("opening run history: %w", err)
		}
		defer db.Close()
		if _, err := db.InsertReport(rep); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	notification := report.BuildNotification(rep)
	var notifier notify.Notifier = notify.Stderr{}
	if reportNotify && cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL)
	}
	if err := notifier.Send(cmd.Context(), notification); err != nil {
		// A report that exists but was not announced is still a report.
		fmt.Fprintln(os.Stderr, "warning: notification delivery failed:", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	renderReport(rep, snap.Partial)
	fmt.Printf(" %s %s\n\n",
		output.StyleLabel.Render("Report written"),
		output.StyleMuted.Render(path))
	return nil
}

// reportPeriod builds the Period for this run from the flags. The period
// date is today; the window defaults to 7 days (weekly) or 30 (monthly)
// unless --days overrides it.
func reportPeriod() report.Period {
	periodType := report.PeriodWeekly
	windowDays := 7
	if reportMonthly {
		periodType = report.PeriodMonthly
		windowDays = 30
	}
	if reportDays > 0 {
		windowDays = reportDays
	}
	return report.Period{
		Type:       periodType,
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
		WindowDays: windowDays,
	}
}

func renderReport(r report.Report, partial []string) {
	fmt.Println(output.Section(fmt.Sprintf("%s Report — %s",
		titleCase(r.Period.Type), r.Period.Date.Format("2006-01-02"))))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Status"),
		output.StylePriority(r.Status))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Leads analyzed"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.LeadCount)))
	if !r.SampleSizeAdequate {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(""),
			output.StyleWarning.Render("sample below minimum; treat trends as directional"))
	}
	for _, src := range partial {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(""),
			output.StyleWarning.Render("source unavailable: "+src))
	}
	fmt.Println()

	renderBlended(r.Metrics)
	renderDecision(r.Decision)
	renderFunnel(r.FunnelStats, r.Bottlenecks)
	renderRecommendations(r.Recommendations)
}

func renderBlended(b metrics.BlendedMetrics) {
	fmt.Println(output.Section("Blended Metrics"))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total spend"),
		output.StyleValue.Render(fmt.Sprintf("$%.2f", b.TotalSpend)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Conversions"),
		output.StyleValue.Render(fmt.Sprintf("%.0f", b.TotalConversions)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Blended CAC"),
		output.StyleValue.Render(fmt.Sprintf("$%.2f", b.BlendedCAC)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Blended ROAS"),
		output.StyleValue.Render(fmt.Sprintf("%.2fx", b.BlendedROAS)))

	if len(b.Weights) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Channel weights:"))
		for _, ch := range sortedKeys(b.Weights) {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(ch),
				output.StyleValue.Render(fmt.Sprintf("%.1f%%", b.Weights[ch]*100)))
		}
	}
	fmt.Println()
}

func renderDecision(d policy.Decision) {
	fmt.Println(output.Section("Decision"))

	fmt.Printf(" %s %s %s\n",
		output.StyleLabel.Render("Tier"),
		output.StyleValue.Render(d.Tier),
		output.StylePriority(d.Priority))
	if d.Trigger != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Triggered by"),
			output.StyleValue.Render(d.Trigger))
	}
	for _, action := range d.Actions {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(""),
			output.StyleMuted.Render("→ "+action))
	}
	fmt.Println()
}

func renderFunnel(stats []funnel.StageStat, bottlenecks []funnel.Bottleneck) {
	fmt.Println(output.Section("Funnel"))

	if len(stats) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No funnel data for this period"))
		return
	}

	tbl := output.NewTable("STAGE", "LEADS", "% OF ENTRY", "NEXT STAGE")
	for _, s := range stats {
		next := "—"
		if s.NextStageConversion != nil {
			next = fmt.Sprintf("%.1f%%", *s.NextStageConversion*100)
		}
		tbl.AddRow(s.Stage,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.1f%%", s.PercentageOfEntry),
			next)
	}
	fmt.Print(tbl.Render())

	for _, b := range bottlenecks {
		label := fmt.Sprintf("%s: %.0f%% drop-off", b.Transition, b.DropoffRate*100)
		if b.Severity == funnel.SeverityCritical {
			fmt.Printf("\n %s %s\n", output.StyleError.Render("✗"), output.StyleError.Render(label))
		} else {
			fmt.Printf("\n %s %s\n", output.StyleWarning.Render("⚠"), output.StyleWarning.Render(label))
		}
	}
	fmt.Println()
}

func renderRecommendations(recs []recommend.Recommendation) {
	fmt.Println(output.Section("Recommendations"))

	if len(recs) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("All metrics within targets; no action needed"))
		return
	}

	for _, rec := range recs {
		fmt.Printf(" %s %s\n",
			output.StylePriority(rec.Priority),
			output.StyleValue.Render(rec.Action))
		fmt.Printf("   %s\n", output.StyleMuted.Render(rec.Rationale))
	}
	fmt.Println()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sortedKeys returns map keys in lexical order for stable rendering.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
