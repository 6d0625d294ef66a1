// Package recommend maps metric deviations and funnel bottlenecks to a
// prioritized list of recommended actions.
package recommend

import (
	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
	"github.com/pulsemetrics/adpulse/internal/policy"
)

// Recommendation is one actionable item with a human-readable rationale.
type Recommendation struct {
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// Targets are the performance targets metric deviations are judged
// against. A zero target disables the corresponding check.
type Targets struct {
	MaxCAC  float64 `json:"max_cac"`
	MinROAS float64 `json:"min_roas"`
}

// Input provides all data needed by the rules to generate
// recommendations. It is assembled by the report command after the
// resolver and the bottleneck detector have run.
type Input struct {
	Blended            metrics.BlendedMetrics
	Decision           policy.Decision
	Bottlenecks        []funnel.Bottleneck
	Targets            Targets
	SampleSizeAdequate bool
	LeadCount          int
}

// Rule examines the input and produces zero or more recommendations.
type Rule func(in *Input) []Recommendation
