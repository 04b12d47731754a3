package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivbijlani/lifetime/internal/calculation"
	"github.com/shivbijlani/lifetime/internal/config"
	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

const exampleScenario = "../../example_scenario.yaml"

// run executes the CLI with args, capturing stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func loadExample(t *testing.T) domain.ScenarioParams {
	t.Helper()
	p, err := config.NewInputParser().LoadFromFile(exampleScenario)
	require.NoError(t, err)
	return *p
}

func TestDefaultsJSONIsAnEnvelope(t *testing.T) {
	out, _, err := run(t, "defaults", "--format", "json")
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.EqualValues(t, 1, env["version"])
	assert.Contains(t, env, "params")
}

func TestDefaultsRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "defaults", "--format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported defaults format")
}

func TestProjectCSVHasOneLinePerYear(t *testing.T) {
	out, _, err := run(t, "project", "--file", exampleScenario, "--format", "csv")
	require.NoError(t, err)

	rows := calculation.Project(loadExample(t))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.True(t, strings.HasPrefix(lines[1], "2027,"), lines[1])
}

func TestProjectRealDollarsJSON(t *testing.T) {
	out, _, err := run(t, "project", "--file", exampleScenario, "--format", "json", "--real", "--name", "Example")
	require.NoError(t, err)

	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Example", report.Name)
	assert.True(t, report.RealDollars)
	assert.Equal(t, 2027, report.Summary.StartYear)
	assert.NotEmpty(t, report.Rows)
}

func TestProjectUnknownFormat(t *testing.T) {
	_, _, err := run(t, "project", "--file", exampleScenario, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Try one of:")
}

func TestProjectMissingFile(t *testing.T) {
	_, _, err := run(t, "project", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestProjectSourcesAreExclusive(t *testing.T) {
	_, _, err := run(t, "project", "--file", exampleScenario, "--scenario", "{}")
	require.Error(t, err)
}

func TestProjectSaveWritesToOutputDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIFETIME_OUTPUT_DIR", dir)
	scenarioFile := filepath.Join(dir, "resolved.yaml")

	out, _, err := run(t, "project", "--file", exampleScenario, "--format", "summary-csv", "--save", "--save-scenario", scenarioFile)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".csv", filepath.Ext(path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	saved, err := config.NewInputParser().LoadFromFile(scenarioFile)
	require.NoError(t, err)
	assert.True(t, loadExample(t).Equal(*saved))
}

func TestProjectFromEncodedScenario(t *testing.T) {
	encoded, _, err := run(t, "encode", "--file", exampleScenario, "--base64")
	require.NoError(t, err)

	out, _, err := run(t, "project", "--scenario", strings.TrimSpace(encoded), "--format", "json")
	require.NoError(t, err)

	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, len(calculation.Project(loadExample(t))), len(report.Rows))
	assert.Equal(t, 42, report.Params.CurrentAge)
}

func TestEncodeShareURLDecodesBack(t *testing.T) {
	link, _, err := run(t, "encode", "--file", exampleScenario, "--share-url", "https://example.com/plan")
	require.NoError(t, err)
	link = strings.TrimSpace(link)
	assert.True(t, strings.HasPrefix(link, "https://example.com/plan?scenario="), link)

	text, err := scenario.FromURL(link)
	require.NoError(t, err)
	decoded, err := scenario.NewCodec(nil).Parse(text)
	require.NoError(t, err)
	assert.True(t, loadExample(t).Equal(decoded.Params))
}

func TestDecodePrintsYAMLEnvelope(t *testing.T) {
	payload, _, err := run(t, "encode", "--file", exampleScenario)
	require.NoError(t, err)

	out, stderr, err := run(t, "decode", strings.TrimSpace(payload))
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "version: 1\n")
	assert.Contains(t, out, "startYear: 2027")
	assert.Contains(t, out, "name: Mortgage 1")
}

func TestDecodeReportsAdjustments(t *testing.T) {
	out, stderr, err := run(t, "decode", `{"version":1,"params":{"currentAge":45,"stocks0":-5,"colour":"blue"}}`, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Ignored unusable values: stocks0")
	assert.Contains(t, stderr, "Ignored unknown fields: colour")

	var env scenario.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, 45, env.Params.CurrentAge)
}

func TestDecodeFallsBackToDefaults(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "lifetime.prom")
	out, stderr, err := run(t, "--metrics-textfile", metricsFile, "decode", `{"version":2,"params":{}}`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "showing defaults")
	assert.Contains(t, out, "version: 1\n")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lifetime_scenario_decode_fallbacks_total{reason="unsupported_version"} 1`)
}

func TestProjectWritesMetrics(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "lifetime.prom")
	_, _, err := run(t, "--metrics-textfile", metricsFile, "project", "--file", exampleScenario, "--format", "summary-csv")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lifetime_projections_total 1")
}

func TestSweepTable(t *testing.T) {
	out, _, err := run(t, "sweep", "--file", exampleScenario, "--from", "58", "--to", "62", "--workers", "2", "--no-progress")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "RETIREMENT AGE COMPARISON\n"), out)
	assert.Contains(t, out, "Highest final net worth:")
}

func TestSweepCSV(t *testing.T) {
	out, _, err := run(t, "sweep", "--file", exampleScenario, "--from", "58", "--to", "62", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "RetirementAge,FinalNetWorth,PeakNetWorth,FirstShortfallYear,YearsFunded", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "58,"))
}

func TestSweepBadRange(t *testing.T) {
	_, _, err := run(t, "sweep", "--file", exampleScenario, "--from", "30", "--to", "40", "--no-progress")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before current age")
}

func TestSweepRangeDefaults(t *testing.T) {
	p := loadExample(t)
	from, to := sweepRange(p, 0, 0)
	assert.Equal(t, 55, from)
	assert.Equal(t, 65, to)

	p.RetirementAge = 44
	from, to = sweepRange(p, 0, 0)
	assert.Equal(t, 42, from)
	assert.Equal(t, 49, to)

	from, to = sweepRange(p, 50, 70)
	assert.Equal(t, 50, from)
	assert.Equal(t, 70, to)
}

func TestInvalidLogFormat(t *testing.T) {
	_, _, err := run(t, "--log-format", "xml", "defaults")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log format")
}
