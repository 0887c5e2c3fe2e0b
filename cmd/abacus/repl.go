package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abacus/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive calculator session",
	Long: `Repl reads expressions one line at a time and prints each result
immediately. Session history lives in memory only; nothing you type is
ever written to disk.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("ui", "auto", "interactive interface (auto|on|off)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	return startREPL(cmd, mode)
}

func startREPL(cmd *cobra.Command, mode uiMode) error {
	settings, err := readRunSettings(cmd)
	if err != nil {
		return err
	}
	opts := ui.Options{
		Prompt:         settings.cfg.Prompt,
		MaxDiagnostics: settings.maxDiagnostics,
		Limits:         settings.cfg.Limits,
		ShowBanner:     !settings.quiet,
		Color:          settings.colorOn(os.Stdout),
	}
	if shouldUseTUI(mode) {
		return ui.Run(opts)
	}
	return ui.RunPlain(opts, os.Stdin, os.Stdout, os.Stderr)
}
