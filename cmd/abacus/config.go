package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"abacus/internal/decimal"
)

// appConfig is the resolved abacus.toml content merged with built-in
// defaults. Flag values still take precedence over everything here.
type appConfig struct {
	Path   string // manifest location, empty when none was found
	Limits decimal.Limits
	Format string // default output format, empty when unset
	Color  string // default color mode, empty when unset
	Prompt string // REPL prompt, empty when unset
}

type fileConfig struct {
	Limits limitsConfig `toml:"limits"`
	Output outputConfig `toml:"output"`
	Repl   replConfig   `toml:"repl"`
}

type limitsConfig struct {
	MaxExponent int64 `toml:"max_exponent"`
	MaxDigits   int64 `toml:"max_digits"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type replConfig struct {
	Prompt string `toml:"prompt"`
}

func findAbacusToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "abacus.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadAppConfig walks parent directories for abacus.toml and applies it on
// top of the built-in defaults. A missing manifest is not an error; a
// malformed one is.
func loadAppConfig(startDir string) (appConfig, error) {
	cfg := appConfig{Limits: decimal.DefaultLimits()}
	path, ok, err := findAbacusToml(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	cfg.Path = path

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("limits", "max_exponent") {
		v, err := safecast.Conv[uint32](raw.Limits.MaxExponent)
		if err != nil || v == 0 {
			return cfg, fmt.Errorf("%s: [limits].max_exponent must be a positive integer", path)
		}
		cfg.Limits.MaxExponent = v
	}
	if meta.IsDefined("limits", "max_digits") {
		v, err := safecast.Conv[uint32](raw.Limits.MaxDigits)
		if err != nil || v == 0 {
			return cfg, fmt.Errorf("%s: [limits].max_digits must be a positive integer", path)
		}
		cfg.Limits.MaxDigits = v
	}
	if meta.IsDefined("output", "format") {
		format := strings.TrimSpace(raw.Output.Format)
		switch format {
		case "pretty", "json", "msgpack":
			cfg.Format = format
		default:
			return cfg, fmt.Errorf("%s: [output].format must be pretty, json or msgpack", path)
		}
	}
	if meta.IsDefined("output", "color") {
		mode := strings.TrimSpace(raw.Output.Color)
		switch mode {
		case "auto", "on", "off":
			cfg.Color = mode
		default:
			return cfg, fmt.Errorf("%s: [output].color must be auto, on or off", path)
		}
	}
	if meta.IsDefined("repl", "prompt") {
		cfg.Prompt = raw.Repl.Prompt
	}
	return cfg, nil
}

// resolveFormat picks --format when the user set it explicitly, otherwise
// the manifest default, otherwise the flag default. Команды без флага
// --format (корневой one-shot) берут значение манифеста либо pretty.
func resolveFormat(cmd *cobra.Command, cfg appConfig) (string, error) {
	if cmd.Flags().Lookup("format") == nil {
		if cfg.Format != "" {
			return cfg.Format, nil
		}
		return "pretty", nil
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	return format, nil
}

// resolveColorMode applies the same precedence to the global --color flag.
func resolveColorMode(cmd *cobra.Command, cfg appConfig) (string, error) {
	flags := cmd.Root().PersistentFlags()
	mode, err := flags.GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && cfg.Color != "" {
		mode = cfg.Color
	}
	return mode, nil
}
