package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abacus/internal/diag"
	"abacus/internal/diagfmt"
	"abacus/internal/driver"
)

// runSettings bundles the global flags and the manifest so every command
// resolves them the same way.
type runSettings struct {
	colorMode      string
	quiet          bool
	timings        bool
	withNotes      bool
	maxDiagnostics int
	cfg            appConfig
}

func readRunSettings(cmd *cobra.Command) (runSettings, error) {
	cfg, err := loadAppConfig(".")
	if err != nil {
		return runSettings{}, err
	}
	colorMode, err := resolveColorMode(cmd, cfg)
	if err != nil {
		return runSettings{}, err
	}

	flags := cmd.Root().PersistentFlags()
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return runSettings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// --with-notes объявлен не на всех командах
	withNotes := false
	if cmd.Flags().Lookup("with-notes") != nil {
		withNotes, err = cmd.Flags().GetBool("with-notes")
		if err != nil {
			return runSettings{}, fmt.Errorf("failed to get with-notes flag: %w", err)
		}
	}

	return runSettings{
		colorMode:      colorMode,
		quiet:          quiet,
		timings:        timings,
		withNotes:      withNotes,
		maxDiagnostics: maxDiagnostics,
		cfg:            cfg,
	}, nil
}

func (s runSettings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Limits:         s.cfg.Limits,
		EnableTimings:  s.timings,
	}
}

func (s runSettings) colorOn(f *os.File) bool {
	return s.colorMode == "on" || (s.colorMode == "auto" && isTerminal(f))
}

// failSilently exits with status 1 after diagnostics were already printed.
func failSilently(cmd *cobra.Command) error {
	// Suppress cobra usage output on diagnostic errors
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("") // Silent error - diagnostics already printed
}

func countErrors(bag *diag.Bag) int {
	if bag == nil {
		return 0
	}
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func buildResultsOutput(results []*driver.FileResult, settings runSettings) diagfmt.ResultsOutput {
	output := diagfmt.ResultsOutput{}
	for _, res := range results {
		for _, line := range res.Lines {
			row := diagfmt.EvalResult{
				File:  res.Path,
				Line:  line.Line,
				Input: line.Text,
				OK:    line.OK,
			}
			if line.OK {
				row.Value = line.Value.String()
			}
			output.Results = append(output.Results, row)
		}
		diags := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              settings.maxDiagnostics,
			IncludeNotes:     settings.withNotes,
		})
		output.Diagnostics = append(output.Diagnostics, diags.Diagnostics...)
		output.Errors += countErrors(res.Bag)
	}
	return output
}

func buildExprOutput(res *driver.ExprResult, input string, settings runSettings) diagfmt.ResultsOutput {
	row := diagfmt.EvalResult{Input: input, OK: res.OK}
	if res.OK {
		row.Value = res.Value.String()
	}
	diags := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
		IncludePositions: true,
		Max:              settings.maxDiagnostics,
		IncludeNotes:     settings.withNotes,
	})
	return diagfmt.ResultsOutput{
		Results:     []diagfmt.EvalResult{row},
		Diagnostics: diags.Diagnostics,
		Errors:      countErrors(res.Bag),
	}
}
