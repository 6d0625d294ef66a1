package metrics

import (
	"math"
	"testing"
)

func TestNormalize_TwoChannelBlend(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google": {Spend: 100, Conversions: 10, CAC: 10, ROAS: 3},
		"meta":   {Spend: 300, Conversions: 15, CAC: 20, ROAS: 2},
	})

	if blended.TotalSpend != 400 {
		t.Errorf("expected total spend 400, got %v", blended.TotalSpend)
	}
	if math.Abs(blended.BlendedCAC-17.5) > 1e-9 {
		t.Errorf("expected blended CAC 17.5, got %v", blended.BlendedCAC)
	}
	if math.Abs(blended.BlendedROAS-2.25) > 1e-9 {
		t.Errorf("expected blended ROAS 2.25, got %v", blended.BlendedROAS)
	}
	if math.Abs(blended.Weights["google"]-0.25) > 1e-9 {
		t.Errorf("expected google weight 0.25, got %v", blended.Weights["google"])
	}
}

func TestNormalize_WeightsSumToOne(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google":   {Spend: 123.45, CAC: 12, ROAS: 1.1},
		"meta":     {Spend: 678.90, CAC: 34, ROAS: 2.2},
		"linkedin": {Spend: 0.01, CAC: 99, ROAS: 0.5},
	})

	sum := 0.0
	for _, w := range blended.Weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected weights to sum to 1, got %v", sum)
	}
}

func TestNormalize_AllZeroSpend(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google": {Spend: 0, CAC: 10, ROAS: 3},
		"meta":   {Spend: 0, CAC: 20, ROAS: 2},
	})

	if blended.TotalSpend != 0 || blended.BlendedCAC != 0 || blended.BlendedROAS != 0 {
		t.Errorf("expected all-zero blend, got %+v", blended)
	}
	// Weights stay defined so downstream consumers never divide by zero.
	if math.Abs(blended.Weights["google"]-0.5) > 1e-9 {
		t.Errorf("expected equal 0.5 weights, got %v", blended.Weights["google"])
	}
}

func TestNormalize_NilChannel(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google": {Spend: 200, Conversions: 4, CAC: 50, ROAS: 1.5},
		"meta":   nil,
	})

	if blended.TotalSpend != 200 {
		t.Errorf("expected total spend 200, got %v", blended.TotalSpend)
	}
	if blended.Weights["meta"] != 0 {
		t.Errorf("expected zero weight for nil channel, got %v", blended.Weights["meta"])
	}
	if math.Abs(blended.BlendedCAC-50) > 1e-9 {
		t.Errorf("expected blended CAC 50, got %v", blended.BlendedCAC)
	}
}

func TestNormalize_AllNilChannels(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{"google": nil, "meta": nil})
	if blended.TotalSpend != 0 || blended.BlendedCAC != 0 || blended.BlendedROAS != 0 {
		t.Errorf("expected zero blend for all-nil channels, got %+v", blended)
	}
}

func TestNormalize_Empty(t *testing.T) {
	blended := Normalize(nil)
	if blended.TotalSpend != 0 {
		t.Errorf("expected zero blend for no channels, got %+v", blended)
	}
	if len(blended.Weights) != 0 {
		t.Errorf("expected empty weight map, got %v", blended.Weights)
	}
}

func TestNormalize_ClampsInvalidInputs(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google": {Spend: math.NaN(), CAC: -5, ROAS: math.Inf(1)},
		"meta":   {Spend: 100, CAC: 20, ROAS: 2},
	})

	if blended.TotalSpend != 100 {
		t.Errorf("expected NaN spend clamped to 0, got total %v", blended.TotalSpend)
	}
	if math.Abs(blended.BlendedCAC-20) > 1e-9 {
		t.Errorf("expected blended CAC 20, got %v", blended.BlendedCAC)
	}
	if math.IsNaN(blended.BlendedROAS) || math.IsInf(blended.BlendedROAS, 0) {
		t.Errorf("expected finite blended ROAS, got %v", blended.BlendedROAS)
	}
}

func TestValues_ContainsKnownKeys(t *testing.T) {
	blended := Normalize(map[string]*ChannelMetrics{
		"google": {Spend: 100, Conversions: 5, CAC: 20, ROAS: 2},
	})
	values := blended.Values()

	for _, key := range []string{KeyTotalSpend, KeyConversions, KeyBlendedCAC, KeyBlendedROAS} {
		if _, ok := values[key]; !ok {
			t.Errorf("expected key %q in values map", key)
		}
	}
	if values[KeyTotalSpend] != 100 {
		t.Errorf("expected total_spend 100, got %v", values[KeyTotalSpend])
	}
}
