package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/latch-project/latch/internal/sweep"
)

var (
	sweepDryRun    bool
	sweepExpireKey string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete lock files whose expiry has passed",
	Long: `Scan the lock directory and delete lock files whose payload carries
an expiry timestamp in the past. Lock files without expiry metadata are never
touched; malformed lock files are reported and skipped.

The engine itself never expires locks. Sweep is the external scraper side of
that contract, meant to run from cron or a maintenance workflow.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := sweep.NewSweeper(requireCodec(), sweepExpireKey)
		report, err := s.Run(requireDir(), time.Now(), sweepDryRun)
		if err != nil {
			exitForErr(err)
		}

		if jsonOutput {
			outputJSON(report)
			return
		}

		fmt.Printf("Scanned: %d lock file(s)\n", report.Scanned)
		fmt.Printf("Expired: %d\n", len(report.Expired))
		for _, path := range report.Expired {
			fmt.Printf("  %s\n", path)
		}
		if sweepDryRun {
			fmt.Println("Dry run: nothing removed")
		} else {
			fmt.Printf("Removed: %d\n", len(report.Removed))
		}
		if len(report.Malformed) > 0 {
			fmt.Printf("Malformed (skipped): %d\n", len(report.Malformed))
			for _, path := range report.Malformed {
				fmt.Printf("  %s\n", path)
			}
		}
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "report expired locks without deleting them")
	sweepCmd.Flags().StringVar(&sweepExpireKey, "expire-key", "", "payload key holding the expiry timestamp (default \"expire\")")
	rootCmd.AddCommand(sweepCmd)
}
