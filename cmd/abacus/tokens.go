package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abacus/internal/diagfmt"
	"abacus/internal/driver"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] [file.abx]",
	Short: "Dump the token stream of an expression",
	Long:  `Tokens breaks an expression down into its constituent tokens`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringP("expr", "e", "", "tokenize the given expression instead of a file")
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}

	settings, err := readRunSettings(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, settings.cfg)
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	var result *driver.TokenizeResult
	switch {
	case expr != "":
		result = driver.TokenizeSource("expr", []byte(expr), settings.maxDiagnostics)
	case len(args) == 1:
		result, err = driver.Tokenize(args[0], settings.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	default:
		return fmt.Errorf("nothing to tokenize: pass -e EXPR or a file")
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.PrettyOpts{
			Color: settings.colorOn(os.Stderr),
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
