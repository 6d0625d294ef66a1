package policy

import "log/slog"

// Evaluate checks a single condition against the metrics map. A condition
// referencing a metric that is absent can never be satisfied: missing data
// degrades the resolver toward safer tiers instead of crashing. An unknown
// operator is a configuration mistake; it is logged and treated as false,
// never fatal.
func Evaluate(cond Condition, values map[string]float64) bool {
	actual, ok := values[cond.Metric]
	if !ok {
		return false
	}

	switch cond.Operator {
	case OpLT:
		return actual < cond.Value
	case OpGT:
		return actual > cond.Value
	case OpGE:
		return actual >= cond.Value
	case OpLE:
		return actual <= cond.Value
	case OpEQ:
		return actual == cond.Value
	default:
		slog.Warn("unknown condition operator",
			slog.String("operator", cond.Operator),
			slog.String("metric", cond.Metric))
		return false
	}
}
