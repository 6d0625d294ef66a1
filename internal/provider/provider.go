// Package provider defines the boundary through which raw marketing data
// enters the engine. The core never knows how data was fetched; it only
// sees already-loaded in-memory structures, possibly partial.
package provider

import (
	"context"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
)

// Provider supplies the raw inputs for one reporting run, one method per
// data source.
type Provider interface {
	// ChannelMetrics returns per-channel ad performance. A nil map or
	// nil entries mean the source had nothing for the period.
	ChannelMetrics(ctx context.Context) (map[string]*metrics.ChannelMetrics, error)

	// Leads returns the lead records for the period.
	Leads(ctx context.Context) ([]funnel.LeadRecord, error)
}

// Snapshot is the gathered input set for one run.
type Snapshot struct {
	Channels map[string]*metrics.ChannelMetrics
	Leads    []funnel.LeadRecord

	// Partial records sources that failed or were absent; the run
	// proceeds with what it has and the report degrades gracefully.
	Partial []string
}
