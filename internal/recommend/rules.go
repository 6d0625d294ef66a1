package recommend

import (
	"fmt"
	"strings"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/policy"
)

// BottleneckRepairs emits exactly one recommendation per detected
// bottleneck, with priority taken from the bottleneck's severity.
func BottleneckRepairs(in *Input) []Recommendation {
	var recs []Recommendation
	for _, b := range in.Bottlenecks {
		priority := policy.PriorityWarning
		if b.Severity == funnel.SeverityCritical {
			priority = policy.PriorityCritical
		}
		recs = append(recs, Recommendation{
			Priority: priority,
			Category: "funnel",
			Action:   fmt.Sprintf("Review the %s transition", b.Transition),
			Rationale: fmt.Sprintf(
				"%.0f%% of leads drop off between %q and %q. "+
					"Audit the messaging, load time, and follow-up cadence at this step "+
					"before spending more on traffic that stalls here.",
				b.DropoffRate*100, b.FromStage, b.ToStage,
			),
		})
	}
	return recs
}

// HighCAC emits at most one recommendation when the blended CAC exceeds
// the configured target.
func HighCAC(in *Input) []Recommendation {
	if in.Targets.MaxCAC <= 0 || in.Blended.BlendedCAC <= in.Targets.MaxCAC {
		return nil
	}
	over := (in.Blended.BlendedCAC/in.Targets.MaxCAC - 1) * 100
	return []Recommendation{{
		Priority: policy.PriorityWarning,
		Category: "acquisition_cost",
		Action:   "Shift budget toward the cheapest converting channel",
		Rationale: fmt.Sprintf(
			"Blended CAC is %.2f, %.0f%% above the %.2f target. "+
				"Channel weights: %s. Reallocating from the heaviest channel "+
				"usually moves blended CAC fastest.",
			in.Blended.BlendedCAC, over, in.Targets.MaxCAC, formatWeights(in),
		),
	}}
}

// LowROAS emits at most one recommendation when the blended ROAS falls
// below the configured target while money is actually being spent.
func LowROAS(in *Input) []Recommendation {
	if in.Targets.MinROAS <= 0 || in.Blended.TotalSpend <= 0 {
		return nil
	}
	if in.Blended.BlendedROAS >= in.Targets.MinROAS {
		return nil
	}
	return []Recommendation{{
		Priority: policy.PriorityWarning,
		Category: "return_on_spend",
		Action:   "Pause the lowest-ROAS ad sets and revisit creative",
		Rationale: fmt.Sprintf(
			"Blended ROAS is %.2f against a %.2f floor on %.2f total spend. "+
				"Cutting the worst performers protects the budget while creative "+
				"or audience changes are tested.",
			in.Blended.BlendedROAS, in.Targets.MinROAS, in.Blended.TotalSpend,
		),
	}}
}

// CriticalEscalation turns a critical decision into an explicit
// human-facing recommendation carrying the tier's planned actions.
func CriticalEscalation(in *Input) []Recommendation {
	if in.Decision.Priority != policy.PriorityCritical {
		return nil
	}
	action := "Escalate to the campaign owner now"
	if len(in.Decision.Actions) > 0 {
		action = fmt.Sprintf("Escalate now: %s", strings.Join(in.Decision.Actions, ", "))
	}
	return []Recommendation{{
		Priority: policy.PriorityCritical,
		Category: "escalation",
		Action:   action,
		Rationale: fmt.Sprintf(
			"The %q tier fired on %q. Critical tiers mean the period "+
				"breached a hard limit and should not wait for the next review cycle.",
			in.Decision.Tier, in.Decision.Trigger,
		),
	}}
}

// InsufficientSample flags funnel conclusions drawn from too few leads.
func InsufficientSample(in *Input) []Recommendation {
	if in.SampleSizeAdequate {
		return nil
	}
	return []Recommendation{{
		Priority: policy.PriorityInfo,
		Category: "data_quality",
		Action:   "Treat funnel numbers as directional only",
		Rationale: fmt.Sprintf(
			"Only %d lead(s) in this period. Stage percentages and drop-off "+
				"rates swing heavily at this volume; wait for more data before "+
				"acting on funnel signals alone.",
			in.LeadCount,
		),
	}}
}

func formatWeights(in *Input) string {
	if len(in.Blended.Weights) == 0 {
		return "n/a"
	}
	parts := make([]string, 0, len(in.Blended.Weights))
	for _, name := range sortedChannels(in.Blended.Weights) {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", name, in.Blended.Weights[name]*100))
	}
	return strings.Join(parts, ", ")
}
