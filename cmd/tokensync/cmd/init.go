package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default tokensync.yaml scaffold.
const initTemplate = `# tokensync configuration
version: 1

# Directory with the canonical token export. Relative paths are resolved
# against this file. Leave empty if the source is not reachable from here;
# every file then reports a warning instead of failing.
source_dir: ../design-export

# Directory with the working copy and the checksum cache.
# Defaults to the directory containing this file.
# local_dir: ./tokens

# Token files, checked and reported in this order.
files:
  - Desktop.tokens.json
  - Tablet.tokens.json
  - Mobile.tokens.json

# cache_file: .token-checksums.json
# value_marker: $value
# update_command: tokensync sync
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter tokensync.yaml configuration",
	Long: `Creates a tokensync.yaml file with the default token file list and a
placeholder source directory.

Use --force to overwrite an existing configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := filepath.Abs(configPath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info(cmd, "Created %s", outPath)
		info(cmd, "")
		info(cmd, "Next steps:")
		info(cmd, "  1. Point source_dir at the design token export")
		info(cmd, "  2. Run 'tokensync check' to compare local and source tokens")
		info(cmd, "  3. Run 'tokensync sync' to pull in source changes")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
