package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/latch-project/latch/internal/lock"
	"github.com/latch-project/latch/pkg/codec"
	"github.com/latch-project/latch/pkg/color"
	"github.com/latch-project/latch/pkg/config"
	"github.com/latch-project/latch/pkg/errclass"
)

// Exit codes: guard violations are a distinct, scriptable failure mode.
const (
	exitError = 1
	exitGuard = 2
)

var (
	cfgOnce sync.Once
	cfg     *config.Config
)

// loadConfig loads the user config once; a broken config file is fatal.
func loadConfig() *config.Config {
	cfgOnce.Do(func() {
		loaded, err := config.Load()
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(exitError)
		}
		cfg = loaded
	})
	return cfg
}

// requireDir resolves the lock directory: --dir flag, then $LATCH_DIR, then
// config lock_dir. Exits if none is set.
func requireDir() string {
	if lockDir != "" {
		return lockDir
	}
	if env := os.Getenv("LATCH_DIR"); env != "" {
		return env
	}
	if c := loadConfig(); c.LockDir != "" {
		return c.LockDir
	}
	fmtErr("no lock directory: pass --dir, set $LATCH_DIR, or set lock_dir in %s/config.yaml", config.Dir())
	os.Exit(exitError)
	return ""
}

// requireCodec resolves the lock file codec from --format, then config.
func requireCodec() codec.Codec {
	name := formatName
	if name == "" {
		name = loadConfig().Format
	}
	c, err := codec.ForName(name)
	if err != nil {
		fmtErr("%v", err)
		os.Exit(exitError)
	}
	return c
}

func newEngine() *lock.Engine {
	return lock.NewEngine(requireCodec())
}

// parseData turns repeated --data key=value flags into a payload mapping.
func parseData(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	payload := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --data %q: expected key=value", pair)
		}
		payload[key] = value
	}
	return payload, nil
}

// exitForErr prints err and exits with the guard code for precondition
// failures, the generic code otherwise.
func exitForErr(err error) {
	fmtErr("%v", err)
	if errors.Is(err, errclass.ErrLockPresent) || errors.Is(err, errclass.ErrLockNotPresent) {
		os.Exit(exitGuard)
	}
	os.Exit(exitError)
}

func fmtErr(format string, args ...any) {
	prefix := "latch: "
	if color.Enabled() {
		prefix = color.Error("latch:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
