// Package sink persists assembled reports as JSON files.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pulsemetrics/adpulse/internal/report"
)

// Write persists the report to <dir>/adpulse-<period>-<date>.json and
// returns the path. Including the period date in the name gives
// one-writer-per-period: two runs for the same period overwrite the same
// file instead of racing on different ones.
func Write(dir string, r report.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	name := fmt.Sprintf("adpulse-%s-%s.json", r.Period.Type, r.Period.Date.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
