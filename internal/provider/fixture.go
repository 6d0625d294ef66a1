package provider

import (
	"context"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
)

// Fixture is a deterministic in-memory provider backing test mode. The
// numbers are chosen so every pipeline stage has something to say: an
// over-target CAC, a funnel bottleneck, and a sample below the default
// minimum.
type Fixture struct{}

// NewFixture creates the test-mode provider.
func NewFixture() *Fixture {
	return &Fixture{}
}

// ChannelMetrics returns a fixed two-channel spread.
func (f *Fixture) ChannelMetrics(ctx context.Context) (map[string]*metrics.ChannelMetrics, error) {
	return map[string]*metrics.ChannelMetrics{
		"google": {Spend: 100, Conversions: 10, CAC: 10, ROAS: 3},
		"meta":   {Spend: 300, Conversions: 4, CAC: 75, ROAS: 1.2},
	}, nil
}

// Leads returns a fixed eight-lead funnel with a sharp drop after the
// content stage.
func (f *Fixture) Leads(ctx context.Context) ([]funnel.LeadRecord, error) {
	reached := func(events ...string) map[string]bool {
		m := make(map[string]bool, len(events))
		for _, e := range events {
			m[e] = true
		}
		return m
	}
	return []funnel.LeadRecord{
		{ID: "L1", Reached: reached("page_view", "content_download", "demo_request", "purchase"), Converted: true},
		{ID: "L2", Reached: reached("page_view", "content_download")},
		{ID: "L3", Reached: reached("page_view", "content_download")},
		{ID: "L4", Reached: reached("page_view", "content_download")},
		{ID: "L5", Reached: reached("page_view")},
		{ID: "L6", Reached: reached("page_view")},
		{ID: "L7", Reached: reached("page_view")},
		{ID: "L8", Reached: reached("page_view")},
	}, nil
}
