package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/logging"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

// ErrRejectedFields is returned when a scenario file carries values that
// cannot be used as written.
var ErrRejectedFields = errors.New("scenario file has unusable values")

// InputParser handles parsing of scenario files
type InputParser struct {
	Logger logging.Logger
	// Base supplies the scenario that file contents are merged onto.
	Base func() domain.ScenarioParams
}

// NewInputParser creates a new input parser merging onto generated defaults
func NewInputParser() *InputParser {
	return &InputParser{Logger: logging.NopLogger{}, Base: scenario.Defaults}
}

// LoadFromFile loads a scenario from a YAML or JSON file. The file may hold
// bare parameters or a versioned envelope.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioParams, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	params, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", filename, err)
	}
	return params, nil
}

// Parse merges a YAML or JSON document onto the base scenario and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioParams, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("scenario file is empty")
	}

	raw, err := unwrapEnvelope(doc)
	if err != nil {
		return nil, err
	}

	base := scenario.Defaults
	if ip.Base != nil {
		base = ip.Base
	}
	params, report := scenario.Merge(base(), raw)

	log := logging.OrNop(ip.Logger)
	if len(report.Unknown) > 0 {
		log.Warnf("Ignoring unknown scenario fields: %s", strings.Join(report.Unknown, ", "))
	}
	if len(report.Migrations) > 0 {
		log.Debugf("Applied scenario migrations: %s", strings.Join(report.Migrations, ", "))
	}

	if err := ip.ValidateScenario(&params, report); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &params, nil
}

// ValidateScenario rejects files whose values were discarded during merging,
// then checks the structural invariants of the result.
func (ip *InputParser) ValidateScenario(params *domain.ScenarioParams, report scenario.MergeReport) error {
	if len(report.Rejected) > 0 {
		return fmt.Errorf("%w: %s", ErrRejectedFields, strings.Join(report.Rejected, ", "))
	}
	if report.Dropped > 0 {
		return fmt.Errorf("%w: %d mortgage or support entries are incomplete", ErrRejectedFields, report.Dropped)
	}
	return params.Validate()
}

// unwrapEnvelope returns the params of a versioned envelope, or doc itself
// when it is a bare parameter set.
func unwrapEnvelope(doc map[string]any) (map[string]any, error) {
	version, hasVersion := doc["version"]
	params, hasParams := doc["params"]
	if !hasVersion || !hasParams {
		return doc, nil
	}

	v, ok := versionNumber(version)
	if !ok {
		return nil, fmt.Errorf("%w: version %v is not an integer", scenario.ErrMalformedEnvelope, version)
	}
	if v != scenario.CurrentVersion {
		return nil, fmt.Errorf("%w: %d", scenario.ErrUnsupportedVersion, v)
	}
	raw, ok := params.(map[string]any)
	if !ok {
		return nil, scenario.ErrMissingParams
	}
	return raw, nil
}

func versionNumber(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < math.MaxInt32 {
			return int(x), true
		}
	}
	return 0, false
}
