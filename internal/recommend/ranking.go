package recommend

import (
	"sort"

	"github.com/pulsemetrics/adpulse/internal/policy"
)

// Rank sorts recommendations critical → warning → info. The sort is
// stable so the rule registration order decides ties, keeping the output
// deterministic for identical inputs.
func Rank(recs []Recommendation) []Recommendation {
	ranked := make([]Recommendation, len(recs))
	copy(ranked, recs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return priorityRank(ranked[i].Priority) < priorityRank(ranked[j].Priority)
	})
	return ranked
}

func priorityRank(p string) int {
	switch p {
	case policy.PriorityCritical:
		return 0
	case policy.PriorityWarning:
		return 1
	default:
		return 2
	}
}

func sortedChannels(weights map[string]float64) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
