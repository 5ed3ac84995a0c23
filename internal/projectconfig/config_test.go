package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Results.Dir", "results", cfg.Results.Dir)
	assertEqual(t, "Reports.Summary", "summary.md", cfg.Reports.Summary)
	assertEqual(t, "Reports.Comparison", "comparison.md", cfg.Reports.Comparison)
	assertEqualInt(t, "Thresholds.MinScore", 90, cfg.Thresholds.MinScore)
	if cfg.Thresholds.Models != nil {
		t.Error("Thresholds.Models should be nil by default")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".evalgate.yaml", `
results:
  dir: "ci-results"
reports:
  summary: "reports/SUMMARY.md"
  comparison: "reports/COMPARISON.md"
thresholds:
  min_score: 85
  models:
    gpt-4o-mini: 80
    claude-sonnet:
      min_score: 92
      min_pass_rate: 88
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Results.Dir", "ci-results", cfg.Results.Dir)
	assertEqual(t, "Reports.Summary", "reports/SUMMARY.md", cfg.Reports.Summary)
	assertEqual(t, "Reports.Comparison", "reports/COMPARISON.md", cfg.Reports.Comparison)
	assertEqualInt(t, "Thresholds.MinScore", 85, cfg.Thresholds.MinScore)

	policy, err := cfg.ThresholdPolicy()
	if err != nil {
		t.Fatalf("ThresholdPolicy() error: %v", err)
	}
	assertEqualInt(t, "Policy.MinScore", 85, policy.MinScore)
	assertIntPtr(t, "Models[gpt-4o-mini].MinScore", 80, policy.Models["gpt-4o-mini"].MinScore)
	if policy.Models["gpt-4o-mini"].MinPassRate != nil {
		t.Error("Models[gpt-4o-mini].MinPassRate should be nil for shorthand entries")
	}
	assertIntPtr(t, "Models[claude-sonnet].MinScore", 92, policy.Models["claude-sonnet"].MinScore)
	assertIntPtr(t, "Models[claude-sonnet].MinPassRate", 88, policy.Models["claude-sonnet"].MinPassRate)
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".evalgate.yaml", `
results:
  dir: "nightly"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Overridden
	assertEqual(t, "Results.Dir", "nightly", cfg.Results.Dir)

	// Defaults preserved
	assertEqual(t, "Reports.Summary", "summary.md", cfg.Reports.Summary)
	assertEqual(t, "Reports.Comparison", "comparison.md", cfg.Reports.Comparison)
	assertEqualInt(t, "Thresholds.MinScore", 90, cfg.Thresholds.MinScore)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Should be identical to New()
	defaults := New()
	assertEqual(t, "Results.Dir", defaults.Results.Dir, cfg.Results.Dir)
	assertEqual(t, "Reports.Summary", defaults.Reports.Summary, cfg.Reports.Summary)
	assertEqualInt(t, "Thresholds.MinScore", defaults.Thresholds.MinScore, cfg.Thresholds.MinScore)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".evalgate.yaml", `
results:
  dir: [not valid yaml
    this is broken
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should return error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".evalgate.yaml", `
results:
  dir: "found-it"
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Results.Dir", "found-it", cfg.Results.Dir)
	// Other defaults still populated
	assertEqual(t, "Reports.Summary", "summary.md", cfg.Reports.Summary)
}

func TestThresholdPolicy_NoModels(t *testing.T) {
	policy, err := New().ThresholdPolicy()
	if err != nil {
		t.Fatalf("ThresholdPolicy() error: %v", err)
	}
	assertEqualInt(t, "Policy.MinScore", 90, policy.MinScore)
	if policy.Models != nil {
		t.Error("Policy.Models should be nil without a models section")
	}
}

func TestThresholdPolicy_RejectsBadEntryType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".evalgate.yaml", `
thresholds:
  models:
    gpt-4o: strict
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if _, err := cfg.ThresholdPolicy(); err == nil {
		t.Fatal("ThresholdPolicy() should reject a string entry")
	}
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertIntPtr(t *testing.T, field string, want int, got *int) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%d", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %d, want %d", field, *got, want)
	}
}
