package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"abacus/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "abacus [expression]",
	Short: "Exact decimal calculator",
	Long: `Abacus evaluates arithmetic expressions with exact decimal arithmetic,
so 0.1 + 0.2 is 0.3 and never 0.30000000000000004.

With an expression argument the result is printed directly; without one,
abacus starts an interactive session on a terminal or evaluates lines
from stdin otherwise.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRoot,
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runRoot dispatches the bare invocation: an expression argument is evaluated
// one-shot, a terminal gets the interactive session, piped input is read
// line by line (bc style).
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		// `abacus 1 + 2` works the same as `abacus "1 + 2"`
		return runEvalExpression(cmd, strings.Join(args, " "))
	}
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return startREPL(cmd, uiModeAuto)
	}
	return runEvalStdin(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
