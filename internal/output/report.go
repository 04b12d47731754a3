package output

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

// GenerateReport writes report in the named format to a timestamped file in dir.
func GenerateReport(report *domain.ProjectionReport, format, dir string) (string, error) {
	f, err := LookupFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
}

// SaveScenario writes params as a versioned YAML envelope that the scenario
// file parser loads back unchanged.
func SaveScenario(params domain.ScenarioParams, filename string) error {
	b, err := yaml.Marshal(scenario.NewEnvelope(params))
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write scenario %s: %w", filename, err)
	}
	return nil
}
