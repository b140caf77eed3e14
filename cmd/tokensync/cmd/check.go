package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/tokensync/internal/engine"
)

// errDrift marks a check that found files out of sync. The report already
// carries the update instruction, so Execute exits non-zero without an
// extra error line.
var errDrift = errors.New("token files out of sync")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare local token files with the source copies",
	Long: `Hashes every configured token file in the local and source directories and
reports each one as current, outdated, missing or warning (source unreachable).
Outdated files also show modification times and token counts.

Exit 0 and refresh the checksum cache if nothing drifted; exit non-zero if any
file is missing locally or outdated. Suitable for CI pipelines.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	eng := &engine.CheckEngine{Logger: newLogger(cmd.ErrOrStderr())}
	result, err := eng.Check(cmd.Context(), *cfg)
	if err != nil {
		return err
	}

	newRenderer(cmd).Check(result, cfg.UpdateCommand)

	if !result.Clean() {
		return fmt.Errorf("%w: %d file(s)", errDrift, result.Drifted)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
