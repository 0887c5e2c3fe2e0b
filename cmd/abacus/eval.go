package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"abacus/internal/diagfmt"
	"abacus/internal/driver"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [files...]",
	Short: "Evaluate expression files or a single expression",
	Long: `Eval computes expression files line by line: every non-blank line is one
expression and prints one result. Directories are expanded to the .abx
files they contain. With -e the given expression is evaluated instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringP("expr", "e", "", "evaluate the given expression instead of reading files")
	evalCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	evalCmd.Flags().Int("jobs", 0, "parallel file workers (0 = number of CPUs)")
	evalCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runEval(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	settings, err := readRunSettings(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, settings.cfg)
	if err != nil {
		return err
	}

	if expr != "" {
		res := driver.EvaluateSource("expr", []byte(expr), settings.driverOptions())
		return renderExprResult(cmd, settings, format, expr, res)
	}
	if len(args) == 0 {
		return fmt.Errorf("nothing to evaluate: pass -e EXPR or at least one file")
	}

	paths, err := expandEvalArgs(args)
	if err != nil {
		return err
	}

	// Вычисляем файлы параллельно
	results, err := driver.EvaluateFiles(cmd.Context(), paths, settings.driverOptions(), jobs)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	return renderFileResults(cmd, settings, format, results)
}

// runEvalExpression backs the bare `abacus "1 + 2"` form.
func runEvalExpression(cmd *cobra.Command, expr string) error {
	settings, err := readRunSettings(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, settings.cfg)
	if err != nil {
		return err
	}
	res := driver.EvaluateSource("expr", []byte(expr), settings.driverOptions())
	return renderExprResult(cmd, settings, format, expr, res)
}

// runEvalStdin evaluates piped input line by line.
func runEvalStdin(cmd *cobra.Command) error {
	settings, err := readRunSettings(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, settings.cfg)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	result := driver.EvaluateLines("stdin", data, settings.driverOptions())
	return renderFileResults(cmd, settings, format, []*driver.FileResult{result})
}

// expandEvalArgs expands directory arguments into the .abx files they
// contain. Unreadable paths pass through untouched so the driver reports
// them as diagnostics instead of aborting the whole batch.
func expandEvalArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			paths = append(paths, arg)
			continue
		}
		if info.IsDir() {
			found, err := driver.ListExpressionFiles(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no .abx files found in %s", arg)
			}
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

func renderFileResults(cmd *cobra.Command, settings runSettings, format string, results []*driver.FileResult) error {
	switch format {
	case "pretty":
		return renderFileResultsPretty(cmd, settings, results)
	case "json", "msgpack":
		output := buildResultsOutput(results, settings)
		var err error
		if format == "json" {
			err = diagfmt.ResultsJSON(os.Stdout, output)
		} else {
			err = diagfmt.ResultsMsgpack(os.Stdout, output)
		}
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		for _, res := range results {
			if res.Bag.HasErrors() {
				return failSilently(cmd)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderFileResultsPretty(cmd *cobra.Command, settings runSettings, results []*driver.FileResult) error {
	useColor := settings.colorOn(os.Stderr)
	hadErrors := false
	for i, res := range results {
		if len(results) > 1 && !settings.quiet {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
		}
		bag, timings := splitTimings(res.Bag)
		for _, line := range res.Lines {
			if line.OK {
				fmt.Fprintln(os.Stdout, line.Value.String())
			}
		}
		if bag.HasErrors() || bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     useColor,
				ShowNotes: settings.withNotes,
			})
		}
		for _, rep := range timings {
			printStageTimings(os.Stderr, rep)
		}
		if res.Bag.HasErrors() {
			hadErrors = true
		}
	}
	if hadErrors {
		return failSilently(cmd)
	}
	return nil
}

func renderExprResult(cmd *cobra.Command, settings runSettings, format, input string, res *driver.ExprResult) error {
	switch format {
	case "pretty":
		bag, timings := splitTimings(res.Bag)
		if res.OK {
			fmt.Fprintln(os.Stdout, res.Value.String())
		}
		if bag.HasErrors() || bag.HasWarnings() {
			useColor := settings.colorOn(os.Stderr)
			diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     useColor,
				ShowNotes: settings.withNotes,
			})
		}
		for _, rep := range timings {
			printStageTimings(os.Stderr, rep)
		}
	case "json", "msgpack":
		output := buildExprOutput(res, input, settings)
		var err error
		if format == "json" {
			err = diagfmt.ResultsJSON(os.Stdout, output)
		} else {
			err = diagfmt.ResultsMsgpack(os.Stdout, output)
		}
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if res.Bag.HasErrors() {
		return failSilently(cmd)
	}
	return nil
}
