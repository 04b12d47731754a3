package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/shivbijlani/lifetime/internal/calculation"
	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/output"
)

// sweepSpan is how far either side of the planned retirement age a sweep
// reaches when no range is given.
const sweepSpan = 5

type sweepOptions struct {
	source     scenarioSource
	fromAge    int
	toAge      int
	workers    int
	csv        bool
	noProgress bool
}

func newSweepCmd(a *app) *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare outcomes across a range of retirement ages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSweep(cmd, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().IntVar(&opts.fromAge, "from", 0, "first retirement age (default five years before the planned age)")
	cmd.Flags().IntVar(&opts.toAge, "to", 0, "last retirement age (default five years after the planned age)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent projections (default from settings)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "emit CSV instead of a table")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "hide the progress bar")
	return cmd
}

// sweepRange fills in unset bounds around the planned retirement age,
// clamped to the ages the scenario covers.
func sweepRange(p domain.ScenarioParams, fromAge, toAge int) (int, int) {
	if fromAge == 0 {
		fromAge = max(p.CurrentAge, p.RetirementAge-sweepSpan)
	}
	if toAge == 0 {
		toAge = min(p.MaxAge, p.RetirementAge+sweepSpan)
	}
	return fromAge, toAge
}

func (a *app) runSweep(cmd *cobra.Command, opts *sweepOptions) error {
	params, err := opts.source.load(a)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("cannot sweep scenario: %w", err)
	}

	fromAge, toAge := sweepRange(params, opts.fromAge, opts.toAge)
	workers := opts.workers
	if workers <= 0 {
		workers = a.settings.SweepWorkers
	}

	var onDone func()
	if !opts.noProgress && toAge >= fromAge {
		bar := progressbar.NewOptions(toAge-fromAge+1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Projecting retirement ages"),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		onDone = func() { _ = bar.Add(1) }
	}

	a.log.Debugf("Sweeping retirement ages %d-%d on %d workers", fromAge, toAge, workers)
	points, err := calculation.Sweep(cmd.Context(), params, fromAge, toAge, workers, onDone)
	if err != nil {
		return err
	}
	a.metrics.ProjectionsTotal.Add(float64(len(points)))

	if opts.csv {
		data, err := output.SweepCSV(points)
		if err != nil {
			return err
		}
		return writeOut(cmd, data)
	}
	return writeOut(cmd, output.FormatSweep(points, calculation.AnalyzeSweep(points)))
}
