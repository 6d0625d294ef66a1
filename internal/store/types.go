// Package store provides SQLite persistence for adpulse run history.
package store

import "time"

// RunRow is one stored reporting run.
type RunRow struct {
	ID             int64     `json:"id"`
	RunID          string    `json:"run_id"`
	GeneratedAt    time.Time `json:"generated_at"`
	PeriodType     string    `json:"period_type"`
	PeriodDate     string    `json:"period_date"`
	WindowDays     int       `json:"window_days"`
	Status         string    `json:"status"`
	Tier           string    `json:"tier"`
	Trigger        string    `json:"trigger,omitempty"`
	LeadCount      int       `json:"lead_count"`
	SampleAdequate bool      `json:"sample_adequate"`
	TotalSpend     float64   `json:"total_spend"`
	BlendedCAC     float64   `json:"blended_cac"`
	BlendedROAS    float64   `json:"blended_roas"`
	Payload        string    `json:"payload,omitempty"`
}

// BottleneckRow is one stored funnel bottleneck for a run.
type BottleneckRow struct {
	ID          int64   `json:"id"`
	RunID       int64   `json:"run_db_id"`
	Transition  string  `json:"transition"`
	DropoffRate float64 `json:"dropoff_rate"`
	Severity    string  `json:"severity"`
}

// RecommendationRow is one stored recommendation for a run.
type RecommendationRow struct {
	ID        int64  `json:"id"`
	RunID     int64  `json:"run_db_id"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// MetricDelta is the change in one blended metric between two runs.
type MetricDelta struct {
	Name     string  `json:"name"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}

// RunDiff compares the two most recent runs.
type RunDiff struct {
	Previous *RunRow       `json:"previous"`
	Current  *RunRow       `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}
