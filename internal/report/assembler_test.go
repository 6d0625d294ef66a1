package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
	"github.com/pulsemetrics/adpulse/internal/policy"
	"github.com/pulsemetrics/adpulse/internal/recommend"
)

func testPeriod() Period {
	return Period{
		Type:       PeriodWeekly,
		Date:       time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		WindowDays: 7,
	}
}

func TestAssemble_StatusFromDecision(t *testing.T) {
	r := Assemble(testPeriod(), metrics.BlendedMetrics{},
		nil, policy.Decision{Tier: "autoExecute", Priority: policy.PriorityInfo},
		nil, nil, nil, true, 50)
	if r.Status != policy.PriorityInfo {
		t.Errorf("expected info status, got %q", r.Status)
	}
}

func TestAssemble_CriticalBottleneckRaisesStatus(t *testing.T) {
	r := Assemble(testPeriod(), metrics.BlendedMetrics{},
		nil, policy.Decision{Tier: "autoExecute", Priority: policy.PriorityInfo},
		nil,
		[]funnel.Bottleneck{{Transition: "page → content", Severity: funnel.SeverityCritical}},
		nil, true, 50)
	if r.Status != policy.PriorityCritical {
		t.Errorf("expected critical status, got %q", r.Status)
	}
}

func TestAssemble_InadequateSampleIsAtLeastWarning(t *testing.T) {
	r := Assemble(testPeriod(), metrics.BlendedMetrics{},
		nil, policy.Decision{Tier: "autoExecute", Priority: policy.PriorityInfo},
		nil, nil, nil, false, 3)
	if r.Status != policy.PriorityWarning {
		t.Errorf("expected warning status, got %q", r.Status)
	}

	// A critical decision is not downgraded by the sample flag.
	r = Assemble(testPeriod(), metrics.BlendedMetrics{},
		nil, policy.Decision{Tier: "alertImmediately", Priority: policy.PriorityCritical},
		nil, nil, nil, false, 3)
	if r.Status != policy.PriorityCritical {
		t.Errorf("expected critical status, got %q", r.Status)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	blended := metrics.BlendedMetrics{
		TotalSpend:  400,
		BlendedCAC:  17.5,
		BlendedROAS: 2.25,
		Weights:     map[string]float64{"google": 0.25, "meta": 0.75},
	}
	decision := policy.Decision{Tier: "requestApproval", Trigger: "blended_cac", Priority: policy.PriorityWarning}
	stats := []funnel.StageStat{{Stage: "page", Count: 2, PercentageOfEntry: 100}}
	bottlenecks := []funnel.Bottleneck{{Transition: "page → content", DropoffRate: 0.5, Severity: funnel.SeverityWarning}}
	recs := []recommend.Recommendation{{Priority: policy.PriorityWarning, Action: "Review the page → content transition"}}
	values := blended.Values()

	first := Assemble(testPeriod(), blended, values, decision, stats, bottlenecks, recs, true, 20)
	second := Assemble(testPeriod(), blended, values, decision, stats, bottlenecks, recs, true, 20)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected deep-equal reports:\n%+v\n%+v", first, second)
	}
}

func TestAssemble_UnknownDecisionPriorityDefaultsToWarning(t *testing.T) {
	r := Assemble(testPeriod(), metrics.BlendedMetrics{},
		nil, policy.Decision{Tier: "weird", Priority: "shrug"},
		nil, nil, nil, true, 10)
	if r.Status != policy.PriorityWarning {
		t.Errorf("expected warning status for unknown priority, got %q", r.Status)
	}
}
