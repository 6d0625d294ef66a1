package funnel

import "fmt"

// Detect derives the drop-off rate for every stage transition and
// classifies breaches against the warning and critical thresholds. Both
// boundaries are inclusive: a drop-off exactly at the critical threshold
// is critical. Transitions below the warning threshold produce no entry.
// The returned list preserves stage order; callers wanting worst-first
// must sort explicitly.
func Detect(stats []StageStat, warningThreshold, criticalThreshold float64) []Bottleneck {
	var bottlenecks []Bottleneck

	for i := 0; i+1 < len(stats); i++ {
		if stats[i].NextStageConversion == nil {
			continue
		}
		dropoff := 1 - *stats[i].NextStageConversion

		var severity string
		switch {
		case dropoff >= criticalThreshold:
			severity = SeverityCritical
		case dropoff >= warningThreshold:
			severity = SeverityWarning
		default:
			continue
		}

		bottlenecks = append(bottlenecks, Bottleneck{
			Transition:  fmt.Sprintf("%s → %s", stats[i].Stage, stats[i+1].Stage),
			FromStage:   stats[i].Stage,
			ToStage:     stats[i+1].Stage,
			DropoffRate: dropoff,
			Severity:    severity,
		})
	}

	return bottlenecks
}

// HasCritical reports whether any bottleneck in the list is critical.
func HasCritical(bottlenecks []Bottleneck) bool {
	for _, b := range bottlenecks {
		if b.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
