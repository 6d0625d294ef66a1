package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pulsemetrics/adpulse/internal/report"
)

// InsertReport stores one assembled report, including its bottlenecks
// and recommendations, in a single transaction. Returns the row ID.
func (db *DB) InsertReport(r report.Report) (int64, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encoding report payload: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs
		(run_id, generated_at, period_type, period_date, window_days, status, tier,
		 trigger_metric, lead_count, sample_adequate, total_spend, blended_cac,
		 blended_roas, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.GeneratedAt.UTC().Format(time.RFC3339),
		r.Period.Type,
		r.Period.Date.Format("2006-01-02"),
		r.Period.WindowDays,
		r.Status,
		r.Decision.Tier,
		r.Decision.Trigger,
		r.LeadCount,
		r.SampleSizeAdequate,
		r.Metrics.TotalSpend,
		r.Metrics.BlendedCAC,
		r.Metrics.BlendedROAS,
		string(payload),
	)
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, b := range r.Bottlenecks {
		if _, err := tx.Exec(
			"INSERT INTO run_bottlenecks (run_id, transition, dropoff_rate, severity) VALUES (?, ?, ?, ?)",
			runID, b.Transition, b.DropoffRate, b.Severity,
		); err != nil {
			return 0, err
		}
	}
	for _, rec := range r.Recommendations {
		if _, err := tx.Exec(
			"INSERT INTO run_recommendations (run_id, priority, category, action, rationale) VALUES (?, ?, ?, ?, ?)",
			runID, rec.Priority, rec.Category, rec.Action, rec.Rationale,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

const runColumns = `id, run_id, generated_at, period_type, period_date, window_days,
	status, tier, trigger_metric, lead_count, sample_adequate, total_spend,
	blended_cac, blended_roas, payload`

// LatestRun returns the most recent run, or nil if none exist.
func (db *DB) LatestRun() (*RunRow, error) {
	row := db.conn.QueryRow("SELECT " + runColumns + " FROM runs ORDER BY id DESC LIMIT 1")
	return scanRun(row)
}

// GetRun returns the run with the given row ID, or nil if absent.
func (db *DB) GetRun(id int64) (*RunRow, error) {
	row := db.conn.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	return scanRun(row)
}

// GetRunN returns the Nth most recent run (1 = latest, 2 = previous).
func (db *DB) GetRunN(n int) (*RunRow, error) {
	row := db.conn.QueryRow(
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT 1 OFFSET ?", n-1)
	return scanRun(row)
}

// ListRuns returns up to limit runs, most recent first.
func (db *DB) ListRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		run, err := scanRunRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Diff compares the two most recent runs and returns blended metric
// deltas. Either side may be nil when fewer than two runs exist.
func (db *DB) Diff() (*RunDiff, error) {
	current, err := db.GetRunN(1)
	if err != nil {
		return nil, err
	}
	previous, err := db.GetRunN(2)
	if err != nil {
		return nil, err
	}

	diff := &RunDiff{Previous: previous, Current: current}
	if previous == nil || current == nil {
		return diff, nil
	}

	diff.Deltas = []MetricDelta{
		delta("total_spend", previous.TotalSpend, current.TotalSpend),
		delta("blended_cac", previous.BlendedCAC, current.BlendedCAC),
		delta("blended_roas", previous.BlendedROAS, current.BlendedROAS),
	}
	return diff, nil
}

// CountRuns returns the total number of recorded runs.
func (db *DB) CountRuns() (int64, error) {
	var n int64
	err := db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

// RunBottlenecks returns the stored bottlenecks for one run, in funnel
// order.
func (db *DB) RunBottlenecks(runID int64) ([]BottleneckRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_id, transition, dropoff_rate, severity FROM run_bottlenecks WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BottleneckRow
	for rows.Next() {
		var b BottleneckRow
		if err := rows.Scan(&b.ID, &b.RunID, &b.Transition, &b.DropoffRate, &b.Severity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// RunRecommendations returns the stored recommendations for one run, in
// priority order as generated.
func (db *DB) RunRecommendations(runID int64) ([]RecommendationRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_id, priority, category, action, rationale FROM run_recommendations WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecommendationRow
	for rows.Next() {
		var r RecommendationRow
		if err := rows.Scan(&r.ID, &r.RunID, &r.Priority, &r.Category, &r.Action, &r.Rationale); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func delta(name string, prev, curr float64) MetricDelta {
	return MetricDelta{Name: name, Previous: prev, Current: curr, Delta: curr - prev}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row *sql.Row) (*RunRow, error) {
	run, err := scanRunFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func scanRunRows(rows *sql.Rows) (*RunRow, error) {
	return scanRunFrom(rows)
}

func scanRunFrom(s rowScanner) (*RunRow, error) {
	var run RunRow
	var generatedAt string
	var trigger sql.NullString
	err := s.Scan(
		&run.ID, &run.RunID, &generatedAt, &run.PeriodType, &run.PeriodDate,
		&run.WindowDays, &run.Status, &run.Tier, &trigger, &run.LeadCount,
		&run.SampleAdequate, &run.TotalSpend, &run.BlendedCAC, &run.BlendedROAS,
		&run.Payload,
	)
	if err != nil {
		return nil, err
	}
	run.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	run.Trigger = trigger.String
	return &run, nil
}

// Report decodes the stored full report payload of a run.
func (r *RunRow) Report() (*report.Report, error) {
	var rep report.Report
	if err := json.Unmarshal([]byte(r.Payload), &rep); err != nil {
		return nil, fmt.Errorf("decoding run payload: %w", err)
	}
	return &rep, nil
}
