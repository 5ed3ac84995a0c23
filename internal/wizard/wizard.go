package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/evalgate/evalgate/internal/projectconfig"
	"github.com/evalgate/evalgate/internal/thresholds"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	ResultsDir     string
	SummaryPath    string
	ComparisonPath string
	MinScore       int
}

const configYAMLTemplate = `# evalgate project configuration
results:
  dir: {{ .ResultsDir }}
reports:
  summary: {{ .SummaryPath }}
  comparison: {{ .ComparisonPath }}
thresholds:
  min_score: {{ .MinScore }}
`

// NewConfigSpec returns a ConfigSpec pre-populated with project defaults.
func NewConfigSpec() *ConfigSpec {
	return &ConfigSpec{
		ResultsDir:     projectconfig.DefaultResultsDir,
		SummaryPath:    projectconfig.DefaultSummaryPath,
		ComparisonPath: projectconfig.DefaultComparisonPath,
		MinScore:       thresholds.DefaultMinScore,
	}
}

// RunConfigWizard runs an interactive huh form to collect project settings.
// Fields start out at the project defaults.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	spec := NewConfigSpec()
	minScoreRaw := strconv.Itoa(spec.MinScore)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Results directory").
				Description("Where per-model result JSON files are read from").
				Placeholder(projectconfig.DefaultResultsDir).
				Value(&spec.ResultsDir).
				Validate(requiredValue("results directory")),
			huh.NewInput().
				Title("Summary report path").
				Description("Where the markdown summary is written").
				Placeholder(projectconfig.DefaultSummaryPath).
				Value(&spec.SummaryPath).
				Validate(requiredValue("summary report path")),
			huh.NewInput().
				Title("Comparison report path").
				Description("Where the per-test comparison report is written").
				Placeholder(projectconfig.DefaultComparisonPath).
				Value(&spec.ComparisonPath).
				Validate(requiredValue("comparison report path")),
			huh.NewInput().
				Title("Minimum score").
				Description("Threshold every model must meet (0-100)").
				Placeholder(strconv.Itoa(thresholds.DefaultMinScore)).
				Value(&minScoreRaw).
				Validate(validateMinScore),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	// validateMinScore already vetted the value.
	minScore, err := strconv.Atoi(strings.TrimSpace(minScoreRaw))
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	spec.ResultsDir = strings.TrimSpace(spec.ResultsDir)
	spec.SummaryPath = strings.TrimSpace(spec.SummaryPath)
	spec.ComparisonPath = strings.TrimSpace(spec.ComparisonPath)
	spec.MinScore = minScore
	return spec, nil
}

// GenerateConfigYAML renders a .evalgate.yaml from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("configyaml").Parse(configYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func requiredValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateMinScore(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("minimum score must be an integer")
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("minimum score must be between 0 and 100")
	}
	return nil
}
