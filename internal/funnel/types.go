// Package funnel computes per-stage lead funnel statistics and detects
// drop-off bottlenecks between stages.
package funnel

import "time"

// StageDefinition describes one funnel stage. Definitions form an ordered
// list; Score is non-decreasing along the list and feeds lead scoring.
type StageDefinition struct {
	Name  string  `json:"name"`
	Event string  `json:"event"`
	Score float64 `json:"score"`
}

// LeadRecord captures which stages a single lead has reached. Keys of
// Reached are stage event names.
type LeadRecord struct {
	ID          string               `json:"id,omitempty"`
	Reached     map[string]bool      `json:"reached"`
	ReachedAt   map[string]time.Time `json:"reached_at,omitempty"`
	Converted   bool                 `json:"converted,omitempty"`
	CreatedAt   time.Time            `json:"created_at,omitempty"`
	ConvertedAt time.Time            `json:"converted_at,omitempty"`
}

// StageStat holds the computed statistics for one stage.
// NextStageConversion is nil for the last stage, where no transition
// exists.
type StageStat struct {
	Stage               string   `json:"stage"`
	Count               int      `json:"count"`
	PercentageOfEntry   float64  `json:"percentage_of_entry"`
	NextStageConversion *float64 `json:"next_stage_conversion,omitempty"`
}

// Severity levels for bottlenecks.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Bottleneck is a stage transition whose drop-off rate breached a
// configured threshold.
type Bottleneck struct {
	Transition  string  `json:"transition"`
	FromStage   string  `json:"from_stage"`
	ToStage     string  `json:"to_stage"`
	DropoffRate float64 `json:"dropoff_rate"`
	Severity    string  `json:"severity"`
}
