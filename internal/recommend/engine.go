package recommend

// Engine runs all registered rules against an Input and collects the
// resulting recommendations.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with all built-in rules registered. Rule
// order is part of the contract: it breaks ties between recommendations
// of equal priority.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			CriticalEscalation,
			BottleneckRepairs,
			HighCAC,
			LowROAS,
			InsufficientSample,
		},
	}
}

// Run executes every rule and returns the recommendations ranked by
// priority (critical first), preserving rule order within a priority.
func (e *Engine) Run(in *Input) []Recommendation {
	var all []Recommendation
	for _, rule := range e.rules {
		all = append(all, rule(in)...)
	}
	return Rank(all)
}
