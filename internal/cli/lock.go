package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/latch-project/latch/internal/lock"
	"github.com/latch-project/latch/pkg/color"
	"github.com/latch-project/latch/pkg/model"
)

var (
	dataPairs      []string
	ensureUnlocked bool
	ensureLocked   bool
)

var statusCmd = &cobra.Command{
	Use:   "status <object>",
	Short: "Show the lock state of an object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(args[0], model.ActionStatus)
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock <object>",
	Short: "Create a lock file for an object",
	Long: `Create (or overwrite) the lock file for an object, writing any --data
metadata into it. With --ensure-unlocked the call fails if a lock file is
already present, leaving it untouched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(args[0], model.ActionLock)
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <object>",
	Short: "Delete the lock file for an object",
	Long: `Delete the lock file for an object, reporting the metadata that had
been stored in it. Unlocking an object that is not locked is a no-op unless
--ensure-locked is set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAction(args[0], model.ActionUnlock)
	},
}

func runAction(object string, action model.Action) {
	payload, err := parseData(dataPairs)
	if err != nil {
		fmtErr("%v", err)
		os.Exit(exitError)
	}

	rec, err := newEngine().Apply(lock.Request{
		Directory:      requireDir(),
		Object:         object,
		Payload:        payload,
		Action:         action,
		EnsureUnlocked: ensureUnlocked,
		EnsureLocked:   ensureLocked,
	})
	if err != nil {
		exitForErr(err)
	}

	if jsonOutput {
		outputJSON(rec.Document())
		return
	}
	printRecord(object, rec)
}

func printRecord(object string, rec *model.LockRecord) {
	state := string(rec.Status)
	if color.Enabled() {
		if rec.Status == model.StatusLocked {
			state = color.Warning(state)
		} else {
			state = color.Success(state)
		}
	}
	fmt.Printf("Object: %s\n", object)
	fmt.Printf("Status: %s\n", state)
	if rec.Location != "" {
		fmt.Printf("Location: %s\n", rec.Location)
	}
	if len(rec.Payload) > 0 {
		fmt.Println("Payload:")
		keys := make([]string, 0, len(rec.Payload))
		for k := range rec.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, rec.Payload[k])
		}
	}
}

func init() {
	for _, cmd := range []*cobra.Command{statusCmd, lockCmd, unlockCmd} {
		cmd.Flags().StringArrayVar(&dataPairs, "data", nil, "payload entry key=value (repeatable)")
		cmd.Flags().BoolVar(&ensureUnlocked, "ensure-unlocked", false, "fail if a lock file is already present")
		cmd.Flags().BoolVar(&ensureLocked, "ensure-locked", false, "fail if no lock file is present")
		rootCmd.AddCommand(cmd)
	}
}
