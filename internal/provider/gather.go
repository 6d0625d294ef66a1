package provider

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pulsemetrics/adpulse/internal/metrics"
)

// Gather fetches all data sources concurrently and returns whatever was
// available. A failing source is logged and recorded on the snapshot,
// never fatal: the engine's contract is to produce a report from partial
// inputs rather than refuse to run.
func Gather(ctx context.Context, p Provider) *Snapshot {
	snap := &Snapshot{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		channels, err := p.ChannelMetrics(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("channel metrics unavailable", slog.String("err", err.Error()))
			snap.Partial = append(snap.Partial, "channel_metrics")
			return nil
		}
		snap.Channels = channels
		return nil
	})

	g.Go(func() error {
		leads, err := p.Leads(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			slog.Warn("lead records unavailable", slog.String("err", err.Error()))
			snap.Partial = append(snap.Partial, "leads")
			return nil
		}
		snap.Leads = leads
		return nil
	})

	// Source errors are swallowed above; Wait only propagates context
	// cancellation, which we also tolerate with a partial snapshot.
	_ = g.Wait()

	if snap.Channels == nil {
		snap.Channels = map[string]*metrics.ChannelMetrics{}
	}
	return snap
}
