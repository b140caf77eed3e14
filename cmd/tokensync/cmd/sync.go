package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/tokensync/internal/engine"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy source token files over the local copies",
	Long: `Writes every source token file that differs from its local copy into the
local directory, creating missing files. Files whose source cannot be read are
left alone. Afterwards the checksum cache is refreshed so the next 'check'
starts from the synced state. Local edits are overwritten: the source wins.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		eng := &engine.SyncEngine{Logger: newLogger(cmd.ErrOrStderr())}
		result, err := eng.Sync(cmd.Context(), *cfg, engine.SyncOptions{DryRun: syncDryRun})
		if err != nil {
			return err
		}

		newRenderer(cmd).Sync(result, syncDryRun)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would be written without writing")
	rootCmd.AddCommand(syncCmd)
}
