package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	localDir   string
	sourceDir  string
	logLevel   string
	verbose    bool
	quiet      bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "tokensync",
	Short: "Detect drift between local design tokens and their source",
	Long: `tokensync compares a local set of design-token files with a canonical
source copy using content checksums and structural token counts.

Running tokensync without a sub-command performs 'check'.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tokensync %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "path to config file")
	rootCmd.PersistentFlags().StringVar(&localDir, "local-dir", "", "directory holding the local token files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", "", "directory holding the source token files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Any returned error means exit status 1;
// drift has already been reported and is not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDrift) {
		errorf(rootCmd.ErrOrStderr(), "%s", err)
	}
	return err
}

// errorf prints a single error line to w.
func errorf(w io.Writer, format string, args ...any) {
	c := color.New(color.FgRed)
	if !useColor() {
		c.DisableColor()
	}
	c.Fprint(w, "Error: ")
	fmt.Fprintf(w, format+"\n", args...)
}
