// Package projectconfig provides the ProjectConfig struct and loader for
// .evalgate.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/evalgate/evalgate/internal/thresholds"
)

// ConfigFileName is the file Load searches for, starting at the working
// directory and walking up.
const ConfigFileName = ".evalgate.yaml"

// Default values for project configuration. New() references them; no other
// code should duplicate them.
const (
	DefaultResultsDir     = "results"
	DefaultSummaryPath    = "summary.md"
	DefaultComparisonPath = "comparison.md"
)

// ResultsConfig holds where result documents are read from.
type ResultsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// ReportsConfig holds output paths for the generated markdown reports.
type ReportsConfig struct {
	Summary    string `yaml:"summary,omitempty"`
	Comparison string `yaml:"comparison,omitempty"`
}

// ThresholdsConfig holds the quality-gate minimums. A models entry is either
// a bare integer (shorthand for min_score) or a mapping with min_score and
// min_pass_rate keys; the raw values are normalized by ThresholdPolicy.
type ThresholdsConfig struct {
	MinScore int            `yaml:"min_score,omitempty"`
	Models   map[string]any `yaml:"models,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .evalgate.yaml.
type ProjectConfig struct {
	Results    ResultsConfig    `yaml:"results,omitempty"`
	Reports    ReportsConfig    `yaml:"reports,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Results: ResultsConfig{
			Dir: DefaultResultsDir,
		},
		Reports: ReportsConfig{
			Summary:    DefaultSummaryPath,
			Comparison: DefaultComparisonPath,
		},
		Thresholds: ThresholdsConfig{
			MinScore: thresholds.DefaultMinScore,
		},
	}
}

// Load finds .evalgate.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// ThresholdPolicy converts the thresholds section into a checker policy,
// resolving the two forms a models entry may take.
func (c *ProjectConfig) ThresholdPolicy() (thresholds.Policy, error) {
	policy := thresholds.Policy{MinScore: c.Thresholds.MinScore}
	if len(c.Thresholds.Models) == 0 {
		return policy, nil
	}

	policy.Models = make(map[string]thresholds.ModelPolicy, len(c.Thresholds.Models))
	for model, raw := range c.Thresholds.Models {
		switch v := raw.(type) {
		case int:
			score := v
			policy.Models[model] = thresholds.ModelPolicy{MinScore: &score}
		case map[string]any:
			var mp thresholds.ModelPolicy
			if err := mapstructure.Decode(v, &mp); err != nil {
				return thresholds.Policy{}, fmt.Errorf("thresholds.models.%s: %w", model, err)
			}
			policy.Models[model] = mp
		default:
			return thresholds.Policy{}, fmt.Errorf("thresholds.models.%s: expected integer or mapping, got %T", model, raw)
		}
	}
	return policy, nil
}

// findConfigFile walks up from dir looking for .evalgate.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Results
	if src.Results.Dir != "" {
		dst.Results.Dir = src.Results.Dir
	}

	// Reports
	if src.Reports.Summary != "" {
		dst.Reports.Summary = src.Reports.Summary
	}
	if src.Reports.Comparison != "" {
		dst.Reports.Comparison = src.Reports.Comparison
	}

	// Thresholds
	if src.Thresholds.MinScore != 0 {
		dst.Thresholds.MinScore = src.Thresholds.MinScore
	}
	if src.Thresholds.Models != nil {
		dst.Thresholds.Models = src.Thresholds.Models
	}
}
