package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shivbijlani/lifetime/internal/config"
	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/logging"
	"github.com/shivbijlani/lifetime/internal/metrics"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

// app carries what every subcommand needs once flags and settings are resolved.
type app struct {
	configFile  string
	logLevel    string
	logFormat   string
	metricsFile string

	settings *config.Settings
	zlog     *zap.Logger
	log      *zap.SugaredLogger
	metrics  *metrics.Collector
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "lifetime",
		Short:        "Project household net worth from today to end of plan",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "settings file (default ./lifetime.yaml if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&a.metricsFile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newDefaultsCmd(a),
		newProjectCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newSweepCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		settings.LogFormat = a.logFormat
	}
	if flags.Changed("metrics-textfile") {
		settings.MetricsTextfile = a.metricsFile
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	a.settings = settings

	zlog, err := logging.New(settings.LogLevel, strings.ToLower(settings.LogFormat))
	if err != nil {
		return err
	}
	a.zlog = zlog
	a.log = zlog.Sugar()
	a.metrics = metrics.New()
	a.log.Debugf("Settings loaded: report format %s, output dir %s", settings.ReportFormat, settings.OutputDir)
	return nil
}

func (a *app) teardown() error {
	if a.settings != nil && a.settings.MetricsTextfile != "" {
		if err := a.metrics.WriteTextfile(a.settings.MetricsTextfile); err != nil {
			return err
		}
		a.log.Debugf("Metrics written to %s", a.settings.MetricsTextfile)
	}
	if a.zlog != nil {
		_ = a.zlog.Sync()
	}
	return nil
}

func (a *app) codec() *scenario.Codec {
	return scenario.NewCodec(a.log)
}

// scenarioSource holds the mutually exclusive ways a command can receive a scenario.
type scenarioSource struct {
	file    string
	payload string
	url     string
}

func (s *scenarioSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "scenario file (YAML or JSON)")
	cmd.Flags().StringVar(&s.payload, "scenario", "", "encoded scenario (JSON or base64 envelope)")
	cmd.Flags().StringVar(&s.url, "url", "", "share URL carrying a scenario")
	cmd.MarkFlagsMutuallyExclusive("file", "scenario", "url")
}

// load resolves the scenario. Encoded payloads that cannot be decoded fall
// back to generated defaults, matching how shared links behave.
func (s *scenarioSource) load(a *app) (domain.ScenarioParams, error) {
	switch {
	case s.file != "":
		parser := config.NewInputParser()
		parser.Logger = a.log
		p, err := parser.LoadFromFile(s.file)
		if err != nil {
			return domain.ScenarioParams{}, err
		}
		return *p, nil
	case s.payload != "":
		return a.decode(s.payload), nil
	case s.url != "":
		text, err := scenario.FromURL(s.url)
		if err != nil {
			return domain.ScenarioParams{}, err
		}
		return a.decode(text), nil
	default:
		a.log.Infof("No scenario given; using generated defaults")
		return scenario.Defaults(), nil
	}
}

func (a *app) decode(text string) domain.ScenarioParams {
	params, err := a.codec().DecodeWithFallback(text)
	if err != nil {
		a.metrics.DecodeFallback(err)
	}
	return params
}

func writeOut(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := fmt.Fprintln(out)
		return err
	}
	return nil
}
