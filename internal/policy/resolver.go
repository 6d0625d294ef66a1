package policy

// Resolve applies the ordered policy to the metrics map and returns the
// first matching tier's decision. Resolution is deterministic: no
// randomness, no time dependence. When nothing matches the fail-safe
// default is returned, so the caller always gets an actionable decision.
func Resolve(policy []RuleTier, values map[string]float64) Decision {
	for _, tier := range policy {
		matched, trigger := tierMatches(tier, values)
		if !matched {
			continue
		}
		priority := tier.Priority
		if !ValidPriority(priority) {
			priority = PriorityWarning
		}
		return Decision{
			Tier:     tier.Name,
			Trigger:  trigger,
			Priority: priority,
			Actions:  tier.Actions,
		}
	}

	return Decision{
		Tier:     DefaultTier,
		Trigger:  "uncertain",
		Priority: PriorityWarning,
	}
}

// tierMatches evaluates one tier's conditions under its match mode and
// returns the metric name that triggered the match. A tier with no
// conditions never matches; explicit conditions are required for a tier
// to claim a period.
func tierMatches(tier RuleTier, values map[string]float64) (bool, string) {
	if len(tier.Conditions) == 0 {
		return false, ""
	}

	switch tier.Match {
	case MatchAny:
		for _, cond := range tier.Conditions {
			if Evaluate(cond, values) {
				return true, cond.Metric
			}
		}
		return false, ""
	default:
		// MatchAll, and the conservative reading of anything unexpected.
		for _, cond := range tier.Conditions {
			if !Evaluate(cond, values) {
				return false, ""
			}
		}
		return true, tier.Conditions[0].Metric
	}
}
