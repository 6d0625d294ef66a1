package policy

import "testing"

func TestEvaluate_Operators(t *testing.T) {
	values := map[string]float64{"blended_cac": 50}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"lt true", Condition{Metric: "blended_cac", Operator: "<", Value: 60}, true},
		{"lt false", Condition{Metric: "blended_cac", Operator: "<", Value: 50}, false},
		{"gt true", Condition{Metric: "blended_cac", Operator: ">", Value: 40}, true},
		{"gt false", Condition{Metric: "blended_cac", Operator: ">", Value: 50}, false},
		{"ge equal", Condition{Metric: "blended_cac", Operator: ">=", Value: 50}, true},
		{"ge above", Condition{Metric: "blended_cac", Operator: ">=", Value: 49}, true},
		{"ge below", Condition{Metric: "blended_cac", Operator: ">=", Value: 51}, false},
		{"le equal", Condition{Metric: "blended_cac", Operator: "<=", Value: 50}, true},
		{"le false", Condition{Metric: "blended_cac", Operator: "<=", Value: 49}, false},
		{"eq true", Condition{Metric: "blended_cac", Operator: "==", Value: 50}, true},
		{"eq false", Condition{Metric: "blended_cac", Operator: "==", Value: 50.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.cond, values); got != tt.want {
				t.Errorf("Evaluate(%+v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestEvaluate_MissingMetric(t *testing.T) {
	cond := Condition{Metric: "blended_roas", Operator: ">", Value: 0}
	if Evaluate(cond, map[string]float64{"blended_cac": 50}) {
		t.Error("expected false for a condition on an absent metric")
	}
	if Evaluate(cond, nil) {
		t.Error("expected false for a nil metrics map")
	}
}

func TestEvaluate_UnknownOperator(t *testing.T) {
	cond := Condition{Metric: "blended_cac", Operator: "!=", Value: 50}
	if Evaluate(cond, map[string]float64{"blended_cac": 10}) {
		t.Error("expected unknown operator to evaluate false")
	}
}

func TestEvaluate_GreaterThanBoundary(t *testing.T) {
	// Strict monotonicity around the threshold.
	cond := Condition{Metric: "x", Operator: ">", Value: 100}
	eps := 1e-9
	if !Evaluate(cond, map[string]float64{"x": 100 + eps}) {
		t.Error("expected true just above the threshold")
	}
	if Evaluate(cond, map[string]float64{"x": 100 - eps}) {
		t.Error("expected false just below the threshold")
	}
}
