package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latch-project/latch/pkg/color"
	"github.com/latch-project/latch/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	lockDir    string
	formatName string

	rootCmd = &cobra.Command{
		Use:   "latch",
		Short: "latch - file-backed lock markers for out-of-band coordination",
		Long: `latch marks logical objects (servers, switches, config files) as
locked by creating <object>.lock files in a shared directory, optionally
carrying caller metadata. Independent processes and workflow steps use the
markers to coordinate deployments, maintenance windows, and troubleshooting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
			cfg := loadConfig()
			logging.SetGlobal(logging.NewLogger(logging.ParseLevel(cfg.Logging.Level)))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&lockDir, "dir", "", "lock directory (default: config lock_dir, then $LATCH_DIR)")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "", "lock file format: yaml or json (default: config format)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
