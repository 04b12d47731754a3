package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivbijlani/lifetime/internal/calculation"
	"github.com/shivbijlani/lifetime/internal/output"
)

type projectOptions struct {
	source       scenarioSource
	name         string
	format       string
	realDollars  bool
	save         bool
	saveScenario string
}

func newProjectCmd(a *app) *cobra.Command {
	opts := &projectOptions{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a scenario year by year",
		Long: `Run the year-by-year projection for a scenario and render the result.

The scenario comes from --file, an encoded --scenario payload or a share
--url. With none of them a generated default scenario is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProject(cmd, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.name, "name", "", "scenario name shown in reports")
	cmd.Flags().StringVar(&opts.format, "format", "", "report format (default from settings)")
	cmd.Flags().BoolVar(&opts.realDollars, "real", false, "report in start-year dollars")
	cmd.Flags().BoolVar(&opts.save, "save", false, "write the report to a timestamped file in the output directory")
	cmd.Flags().StringVar(&opts.saveScenario, "save-scenario", "", "also write the resolved scenario to this YAML file")
	return cmd
}

func (a *app) runProject(cmd *cobra.Command, opts *projectOptions) error {
	params, err := opts.source.load(a)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = a.settings.ReportFormat
	}
	formatter, err := output.LookupFormatter(format)
	if err != nil {
		return err
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(a.log)
	start := time.Now()
	report, err := engine.RunScenario(cmd.Context(), params)
	if err != nil {
		return err
	}
	a.metrics.ObserveProjection(report.Rows, time.Since(start))

	if opts.realDollars || (a.settings.RealDollars && !cmd.Flags().Changed("real")) {
		report = calculation.ToRealDollars(report)
	}
	report.Name = opts.name
	if report.Name == "" {
		report.Name = fmt.Sprintf("Plan %d-%d", params.StartYear, params.EndYear())
	}

	if s := report.Summary; !s.FullyFunded() {
		a.log.Warnf("Scenario runs short in %d of %d years, first in %d", s.ShortfallYears, s.Years, s.FirstShortfallYear)
	}

	if opts.saveScenario != "" {
		if err := output.SaveScenario(params, opts.saveScenario); err != nil {
			return err
		}
		a.log.Infof("Scenario saved to %s", opts.saveScenario)
	}

	if opts.save {
		path, err := output.WriteFormatted(formatter, report, a.settings.OutputDir, output.ExtensionFor(formatter.Name()))
		if err != nil {
			return err
		}
		a.log.Infof("Report written to %s", path)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}

	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	return writeOut(cmd, data)
}
