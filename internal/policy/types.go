// Package policy implements the ordered rule hierarchy that classifies a
// reporting period into an action tier.
package policy

// Priority levels for decisions, worst first.
const (
	PriorityCritical = "critical"
	PriorityWarning  = "warning"
	PriorityInfo     = "info"
)

// Match modes for a rule tier.
const (
	// MatchAll requires every condition to hold. Used by auto-execute
	// class tiers: full confidence before unattended action.
	MatchAll = "all"

	// MatchAny requires a single condition to hold. Used by alert class
	// tiers: one red flag is enough to demand attention.
	MatchAny = "any"
)

// Operators accepted by Evaluate.
const (
	OpLT = "<"
	OpGT = ">"
	OpGE = ">="
	OpLE = "<="
	OpEQ = "=="
)

// Condition compares a named metric against a literal value.
type Condition struct {
	Metric   string  `json:"metric"`
	Operator string  `json:"operator"`
	Value    float64 `json:"value"`
}

// RuleTier is one rule group in the decision policy. Tiers are evaluated
// in slice order; the first matching tier wins.
type RuleTier struct {
	Name       string      `json:"name"`
	Match      string      `json:"match"`
	Priority   string      `json:"priority"`
	Conditions []Condition `json:"conditions"`
	Actions    []string    `json:"actions,omitempty"`
}

// Decision is the outcome of resolving a policy against a metrics map.
// Trigger names the metric whose condition matched.
type Decision struct {
	Tier     string   `json:"tier"`
	Trigger  string   `json:"trigger,omitempty"`
	Priority string   `json:"priority"`
	Actions  []string `json:"actions,omitempty"`
}

// DefaultTier is the fail-safe tier returned when no rule matches:
// unknown situations always require human review.
const DefaultTier = "requestApproval"

// rank orders priorities for worst-of comparisons.
func rank(priority string) int {
	switch priority {
	case PriorityCritical:
		return 0
	case PriorityWarning:
		return 1
	default:
		return 2
	}
}

// WorstPriority returns the more severe of two priorities.
func WorstPriority(a, b string) string {
	if rank(b) < rank(a) {
		return b
	}
	return a
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityCritical || p == PriorityWarning || p == PriorityInfo
}

// ValidOperator reports whether op is one of the supported comparison
// operators.
func ValidOperator(op string) bool {
	switch op {
	case OpLT, OpGT, OpGE, OpLE, OpEQ:
		return true
	}
	return false
}

// ValidMatch reports whether m is a known match mode.
func ValidMatch(m string) bool {
	return m == MatchAll || m == MatchAny
}
