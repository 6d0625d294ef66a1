package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultMinimumSampleSize, cfg.MinimumSampleSize)
	assert.Equal(t, DefaultFunnel.WarningThreshold, cfg.Funnel.WarningThreshold)
	assert.Equal(t, DefaultFunnel.CriticalThreshold, cfg.Funnel.CriticalThreshold)
	assert.Len(t, cfg.Policy, 3)
	assert.Len(t, cfg.Funnel.Stages, 4)
	assert.Equal(t, "alertImmediately", cfg.Policy[0].Name)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
minimum_sample_size: 10
webhook_url: https://hooks.example.com/T000/B000
funnel:
  warning_threshold: 0.4
  critical_threshold: 0.7
  stages:
    - name: visit
      event: site_visit
      score: 5
    - name: signup
      event: account_created
      score: 50
targets:
  max_cac: 80
  min_roas: 1.5
policy:
  - name: alertImmediately
    match: any
    priority: critical
    conditions:
      - metric: blended_roas
        operator: "<"
        value: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MinimumSampleSize)
	assert.Equal(t, "https://hooks.example.com/T000/B000", cfg.WebhookURL)
	assert.Equal(t, 0.4, cfg.Funnel.WarningThreshold)
	assert.Equal(t, 80.0, cfg.Targets.MaxCAC)
	require.Len(t, cfg.Policy, 1)
	assert.Equal(t, "<", cfg.Policy[0].Conditions[0].Operator)
	require.Len(t, cfg.Funnel.Stages, 2)
	assert.Equal(t, "site_visit", cfg.Funnel.Stages[0].Event)
}

func TestValidate_RejectsBadPolicy(t *testing.T) {
	cfg := &Config{
		Funnel: Funnel{WarningThreshold: 0.4, CriticalThreshold: 0.7},
		Policy: []Tier{{
			Name:       "broken",
			Match:      "any",
			Priority:   "critical",
			Conditions: []Cond{{Metric: "blended_cac", Operator: "!=", Value: 1}},
		}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestValidate_RejectsBadMatchMode(t *testing.T) {
	cfg := &Config{
		Funnel: Funnel{WarningThreshold: 0.4, CriticalThreshold: 0.7},
		Policy: []Tier{{
			Name:       "broken",
			Match:      "some",
			Priority:   "warning",
			Conditions: []Cond{{Metric: "blended_cac", Operator: ">", Value: 1}},
		}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match mode")
}

func TestValidate_RejectsInvertedThresholds(t *testing.T) {
	cfg := &Config{Funnel: Funnel{WarningThreshold: 0.8, CriticalThreshold: 0.5}}
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsDecreasingStageScores(t *testing.T) {
	cfg := &Config{
		Funnel: Funnel{
			WarningThreshold:  0.4,
			CriticalThreshold: 0.7,
			Stages: []Stage{
				{Name: "a", Event: "a", Score: 50},
				{Name: "b", Event: "b", Score: 10},
			},
		},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decreases")
}

func TestRulePolicy_Conversion(t *testing.T) {
	cfg := &Config{Policy: DefaultPolicy}
	tiers := cfg.RulePolicy()
	require.Len(t, tiers, len(DefaultPolicy))
	assert.Equal(t, "alertImmediately", tiers[0].Name)
	assert.Equal(t, "any", tiers[0].Match)
	assert.Equal(t, "blended_cac", tiers[0].Conditions[0].Metric)
	assert.Equal(t, []string{"pause_campaigns", "notify_team"}, tiers[0].Actions)
}

func TestStageDefinitions_Conversion(t *testing.T) {
	cfg := &Config{Funnel: DefaultFunnel}
	stages := cfg.StageDefinitions()
	require.Len(t, stages, 4)
	assert.Equal(t, "page_view", stages[0].Event)
	assert.Equal(t, 100.0, stages[3].Score)
}
