package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/latch-project/latch/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage latch configuration",
	Long: `Manage latch configuration stored in config.yaml under the latch
config directory.

Configuration options:
  lock_dir       - Default lock directory when --dir and $LATCH_DIR are unset
  format         - Default lock file format (yaml, json)
  logging.level  - Log level (debug, info, warn, error)`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		fmt.Printf("# Location: %s\n\n", filepath.Join(config.Dir(), "config.yaml"))
		if cfg.LockDir != "" {
			fmt.Printf("lock_dir: %s\n", cfg.LockDir)
		} else {
			fmt.Println("lock_dir: (not set)")
		}
		fmt.Printf("format: %s\n", cfg.Format)
		fmt.Printf("logging:\n  level: %s\n", cfg.Logging.Level)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		cfg := loadConfig()

		switch key {
		case "lock_dir":
			cfg.LockDir = value
		case "format":
			cfg.Format = value
		case "logging.level":
			cfg.Logging.Level = value
		default:
			fmtErr("unknown config key: %s", key)
			os.Exit(exitError)
		}

		if err := config.Save(cfg); err != nil {
			fmtErr("save config: %v", err)
			os.Exit(exitError)
		}
		if !jsonOutput {
			fmt.Printf("%s = %s\n", key, value)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
