package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latch-project/latch/internal/lock"
)

var checkCmd = &cobra.Command{
	Use:   "check <object|path>",
	Short: "Test whether an object is locked (existence check only)",
	Long: `Test whether a lock file exists. The argument is an object name
resolved against the lock directory, or a literal lock file path if it
contains a path separator. The file content is never read, so check succeeds
even on a malformed lock file.

Exit status is 0 when locked and 1 when unlocked, for use in scripts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]

		var locked bool
		if strings.ContainsAny(target, "/\\") {
			locked = lock.IsLockedPath(target)
		} else {
			var err error
			locked, err = lock.NewEngine(nil).IsLocked(requireDir(), target)
			if err != nil {
				exitForErr(err)
			}
		}

		if jsonOutput {
			outputJSON(map[string]any{"target": target, "locked": locked})
		} else if locked {
			fmt.Println("locked")
		} else {
			fmt.Println("unlocked")
		}
		if !locked {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
