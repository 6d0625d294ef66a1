// Package config provides configuration loading and defaults for adpulse.
package config

// DefaultConfigDir is the default location for adpulse configuration.
const DefaultConfigDir = "~/.config/adpulse"

// DefaultDBName is the filename for the SQLite run history database.
const DefaultDBName = "adpulse.db"

// DefaultDataDir is where the file provider looks for ads.json and
// leads.json dropped by the external fetch scripts.
const DefaultDataDir = "~/.local/share/adpulse/data"

// DefaultOutDir is where report JSON files are written.
const DefaultOutDir = "~/.local/share/adpulse/reports"

// DefaultPort is the listen port for the serve command.
const DefaultPort = "8080"

// DefaultMinimumSampleSize is the lead count below which funnel numbers
// are flagged as directional only.
const DefaultMinimumSampleSize = 30

// DefaultFunnel holds the default funnel thresholds and stages.
var DefaultFunnel = Funnel{
	WarningThreshold:  0.5,
	CriticalThreshold: 0.8,
	Stages: []Stage{
		{Name: "page", Event: "page_view", Score: 10},
		{Name: "content", Event: "content_download", Score: 30},
		{Name: "demo", Event: "demo_request", Score: 60},
		{Name: "customer", Event: "purchase", Score: 100},
	},
}

// DefaultTargets holds the default performance targets.
var DefaultTargets = Targets{
	MaxCAC:  50,
	MinROAS: 2,
}

// DefaultPolicy is the default decision policy, highest priority first.
// Alert tiers match on any condition; the auto-execute tier requires
// every condition to hold.
var DefaultPolicy = []Tier{
	{
		Name:     "alertImmediately",
		Match:    "any",
		Priority: "critical",
		Conditions: []Cond{
			{Metric: "blended_cac", Operator: ">", Value: 100},
			{Metric: "blended_roas", Operator: "<", Value: 1},
		},
		Actions: []string{"pause_campaigns", "notify_team"},
	},
	{
		Name:     "requestApproval",
		Match:    "any",
		Priority: "warning",
		Conditions: []Cond{
			{Metric: "blended_cac", Operator: ">", Value: 60},
			{Metric: "blended_roas", Operator: "<", Value: 1.5},
		},
		Actions: []string{"draft_budget_change"},
	},
	{
		Name:     "autoExecute",
		Match:    "all",
		Priority: "info",
		Conditions: []Cond{
			{Metric: "blended_cac", Operator: "<=", Value: 60},
			{Metric: "blended_roas", Operator: ">=", Value: 2},
		},
		Actions: []string{"rebalance_budget"},
	},
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
