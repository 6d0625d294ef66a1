// Package report composes the outputs of one analysis run into an
// immutable report record and a notification payload.
package report

import (
	"time"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
	"github.com/pulsemetrics/adpulse/internal/policy"
	"github.com/pulsemetrics/adpulse/internal/recommend"
)

// Report period types.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Period identifies the reporting window of one run.
type Period struct {
	Type       string    `json:"type"`
	Date       time.Time `json:"date"`
	WindowDays int       `json:"window_days"`
}

// Report is the single externally visible artifact of a run. It is
// created once by Assemble and never mutated afterwards. RunID and
// GeneratedAt are stamped by the caller after assembly so that Assemble
// itself stays a pure function of its inputs.
type Report struct {
	RunID              string                     `json:"run_id,omitempty"`
	GeneratedAt        time.Time                  `json:"generated_at,omitzero"`
	Period             Period                     `json:"period"`
	Status             string                     `json:"status"`
	Metrics            metrics.BlendedMetrics     `json:"metrics"`
	MetricValues       map[string]float64         `json:"metric_values,omitempty"`
	Decision           policy.Decision            `json:"decision"`
	FunnelStats        []funnel.StageStat         `json:"funnel_stats,omitempty"`
	Bottlenecks        []funnel.Bottleneck        `json:"bottlenecks,omitempty"`
	Recommendations    []recommend.Recommendation `json:"recommendations,omitempty"`
	SampleSizeAdequate bool                       `json:"sample_size_adequate"`
	LeadCount          int                        `json:"lead_count"`
}

// Assemble composes one report from the outputs of the pipeline stages.
// It performs no I/O and is idempotent: identical inputs always yield a
// structurally identical report. Status is the worst of the decision
// priority, the presence of any critical bottleneck, and sample
// adequacy (an inadequate sample is at least a warning).
func Assemble(
	period Period,
	blended metrics.BlendedMetrics,
	metricValues map[string]float64,
	decision policy.Decision,
	funnelStats []funnel.StageStat,
	bottlenecks []funnel.Bottleneck,
	recommendations []recommend.Recommendation,
	sampleSizeAdequate bool,
	leadCount int,
) Report {
	status := decision.Priority
	if funnel.HasCritical(bottlenecks) {
		status = policy.WorstPriority(status, policy.PriorityCritical)
	}
	if !sampleSizeAdequate {
		status = policy.WorstPriority(status, policy.PriorityWarning)
	}
	if !policy.ValidPriority(status) {
		status = policy.PriorityWarning
	}

	return Report{
		Period:             period,
		Status:             status,
		Metrics:            blended,
		MetricValues:       metricValues,
		Decision:           decision,
		FunnelStats:        funnelStats,
		Bottlenecks:        bottlenecks,
		Recommendations:    recommendations,
		SampleSizeAdequate: sampleSizeAdequate,
		LeadCount:          leadCount,
	}
}
