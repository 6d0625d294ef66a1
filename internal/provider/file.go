package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/metrics"
)

// Data file names expected in the provider directory. External fetch
// scripts drop these before a run.
const (
	adsFileName   = "ads.json"
	leadsFileName = "leads.json"
)

// FileProvider reads run inputs from JSON files in a data directory.
// A missing file yields empty input, not an error: any source may be
// absent for a period.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider rooted at the given directory.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// ChannelMetrics loads ads.json, a map of channel name to metrics.
// Explicit nulls in the file are preserved as nil channels.
func (p *FileProvider) ChannelMetrics(ctx context.Context) (map[string]*metrics.ChannelMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(p.dir, adsFileName))
	if os.IsNotExist(err) {
		return map[string]*metrics.ChannelMetrics{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", adsFileName, err)
	}

	var channels map[string]*metrics.ChannelMetrics
	if err := json.Unmarshal(raw, &channels); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", adsFileName, err)
	}
	return channels, nil
}

// Leads loads leads.json, a list of lead records.
func (p *FileProvider) Leads(ctx context.Context) ([]funnel.LeadRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(p.dir, leadsFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", leadsFileName, err)
	}

	var leads []funnel.LeadRecord
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", leadsFileName, err)
	}
	return leads, nil
}
