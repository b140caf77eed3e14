package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bianoble/tokensync/internal/config"
	"github.com/bianoble/tokensync/internal/report"
)

const defaultConfigFile = "tokensync.yaml"

// loadConfig reads the config file and applies flag overrides. A missing
// config file is fine unless --config was given explicitly: the defaults
// rooted at the working directory are used instead.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("resolving working directory: %w", wdErr)
		}
		cfg, err = config.Default(wd), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}

	overlay, err := flagOverlay()
	if err != nil {
		return nil, err
	}
	cfg = config.Merge(cfg, overlay)

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}
	return cfg, nil
}

// flagOverlay turns --local-dir and --source-dir into a config overlay.
// Relative paths are taken from the working directory.
func flagOverlay() (*config.Config, error) {
	overlay := &config.Config{}
	for _, f := range []struct {
		value string
		dst   *string
	}{
		{localDir, &overlay.LocalDir},
		{sourceDir, &overlay.SourceDir},
	} {
		if f.value == "" {
			continue
		}
		abs, err := filepath.Abs(f.value)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f.value, err)
		}
		*f.dst = abs
	}
	return overlay, nil
}

// newLogger builds the stderr logger from --log-level and --verbose.
func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useColor reports whether output should be colored. fatih/color already
// disables itself for non-terminals and NO_COLOR.
func useColor() bool {
	return !noColor && !color.NoColor
}

// newRenderer returns a report renderer writing to the command's output,
// or discarding everything in quiet mode.
func newRenderer(cmd *cobra.Command) *report.Renderer {
	var out io.Writer = cmd.OutOrStdout()
	if quiet {
		out = io.Discard
	}
	return &report.Renderer{Out: out, Color: useColor()}
}

// info prints a line unless quiet mode is active.
func info(cmd *cobra.Command, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	}
}
