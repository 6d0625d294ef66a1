package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pulsemetrics/adpulse/internal/funnel"
	"github.com/pulsemetrics/adpulse/internal/policy"
)

// Config is the top-level adpulse configuration.
type Config struct {
	DataDir           string  `mapstructure:"data_dir"`
	OutDir            string  `mapstructure:"out_dir"`
	Port              string  `mapstructure:"port"`
	WebhookURL        string  `mapstructure:"webhook_url"`
	MinimumSampleSize int     `mapstructure:"minimum_sample_size"`
	Funnel            Funnel  `mapstructure:"funnel"`
	Targets           Targets `mapstructure:"targets"`
	Policy            []Tier  `mapstructure:"policy"`
	Output            Output  `mapstructure:"output"`
}

// Funnel defines drop-off thresholds and the ordered stage list.
type Funnel struct {
	WarningThreshold  float64 `mapstructure:"warning_threshold"`
	CriticalThreshold float64 `mapstructure:"critical_threshold"`
	Stages            []Stage `mapstructure:"stages"`
}

// Stage describes one funnel stage in the config file.
type Stage struct {
	Name  string  `mapstructure:"name"`
	Event string  `mapstructure:"event"`
	Score float64 `mapstructure:"score"`
}

// Targets are the blended metric targets used by the recommendation
// rules. A zero value disables the corresponding check.
type Targets struct {
	MaxCAC  float64 `mapstructure:"max_cac"`
	MinROAS float64 `mapstructure:"min_roas"`
}

// Tier describes one decision policy tier in the config file.
type Tier struct {
	Name       string   `mapstructure:"name"`
	Match      string   `mapstructure:"match"`
	Priority   string   `mapstructure:"priority"`
	Conditions []Cond   `mapstructure:"conditions"`
	Actions    []string `mapstructure:"actions"`
}

// Cond describes one condition in the config file.
type Cond struct {
	Metric   string  `mapstructure:"metric"`
	Operator string  `mapstructure:"operator"`
	Value    float64 `mapstructure:"value"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a validated Config with all defaults applied. Validation
// happens here, at load time, so the pure core never sees a malformed
// policy or funnel definition.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("out_dir", DefaultOutDir)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("minimum_sample_size", DefaultMinimumSampleSize)
	v.SetDefault("funnel.warning_threshold", DefaultFunnel.WarningThreshold)
	v.SetDefault("funnel.critical_threshold", DefaultFunnel.CriticalThreshold)
	v.SetDefault("targets.max_cac", DefaultTargets.MaxCAC)
	v.SetDefault("targets.min_roas", DefaultTargets.MinROAS)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing config file is not an error; defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Structured defaults apply only when the file omits the section.
	if len(cfg.Policy) == 0 {
		cfg.Policy = DefaultPolicy
	}
	if len(cfg.Funnel.Stages) == 0 {
		cfg.Funnel.Stages = DefaultFunnel.Stages
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.OutDir = expandPath(cfg.OutDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the policy and funnel definitions for programmer
// errors that must never reach the core.
func (c *Config) Validate() error {
	if c.Funnel.WarningThreshold < 0 || c.Funnel.WarningThreshold > 1 {
		return fmt.Errorf("funnel.warning_threshold %v outside [0,1]", c.Funnel.WarningThreshold)
	}
	if c.Funnel.CriticalThreshold < 0 || c.Funnel.CriticalThreshold > 1 {
		return fmt.Errorf("funnel.critical_threshold %v outside [0,1]", c.Funnel.CriticalThreshold)
	}
	if c.Funnel.WarningThreshold > c.Funnel.CriticalThreshold {
		return fmt.Errorf("funnel.warning_threshold %v exceeds critical_threshold %v",
			c.Funnel.WarningThreshold, c.Funnel.CriticalThreshold)
	}
	if c.MinimumSampleSize < 0 {
		return fmt.Errorf("minimum_sample_size must not be negative")
	}

	prevScore := 0.0
	for i, s := range c.Funnel.Stages {
		if s.Name == "" || s.Event == "" {
			return fmt.Errorf("funnel stage %d: name and event are required", i)
		}
		if s.Score < prevScore {
			return fmt.Errorf("funnel stage %q: score %v decreases along the funnel", s.Name, s.Score)
		}
		prevScore = s.Score
	}

	for _, tier := range c.Policy {
		if tier.Name == "" {
			return fmt.Errorf("policy tier with empty name")
		}
		if !policy.ValidMatch(tier.Match) {
			return fmt.Errorf("policy tier %q: unknown match mode %q", tier.Name, tier.Match)
		}
		if !policy.ValidPriority(tier.Priority) {
			return fmt.Errorf("policy tier %q: unknown priority %q", tier.Name, tier.Priority)
		}
		if len(tier.Conditions) == 0 {
			return fmt.Errorf("policy tier %q: at least one condition is required", tier.Name)
		}
		for _, cond := range tier.Conditions {
			if cond.Metric == "" {
				return fmt.Errorf("policy tier %q: condition with empty metric", tier.Name)
			}
			if !policy.ValidOperator(cond.Operator) {
				return fmt.Errorf("policy tier %q: unknown operator %q", tier.Name, cond.Operator)
			}
		}
	}

	return nil
}

// RulePolicy converts the configured tiers into the policy package's
// value objects.
func (c *Config) RulePolicy() []policy.RuleTier {
	tiers := make([]policy.RuleTier, len(c.Policy))
	for i, t := range c.Policy {
		conds := make([]policy.Condition, len(t.Conditions))
		for j, cond := range t.Conditions {
			conds[j] = policy.Condition{Metric: cond.Metric, Operator: cond.Operator, Value: cond.Value}
		}
		tiers[i] = policy.RuleTier{
			Name:       t.Name,
			Match:      t.Match,
			Priority:   t.Priority,
			Conditions: conds,
			Actions:    t.Actions,
		}
	}
	return tiers
}

// StageDefinitions converts the configured stages into the funnel
// package's value objects.
func (c *Config) StageDefinitions() []funnel.StageDefinition {
	stages := make([]funnel.StageDefinition, len(c.Funnel.Stages))
	for i, s := range c.Funnel.Stages {
		stages[i] = funnel.StageDefinition{Name: s.Name, Event: s.Event, Score: s.Score}
	}
	return stages
}

// DBPath returns the full path to the SQLite run history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}
