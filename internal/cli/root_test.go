package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-project/latch/pkg/color"
	"github.com/latch-project/latch/pkg/model"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestParseData(t *testing.T) {
	payload, err := parseData([]string{"contact=Billy Jenkins", "ticket=65807417"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"contact": "Billy Jenkins",
		"ticket":  "65807417",
	}, payload)
}

func TestParseData_ValueWithEquals(t *testing.T) {
	payload, err := parseData([]string{"note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", payload["note"])
}

func TestParseData_Empty(t *testing.T) {
	payload, err := parseData(nil)
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestParseData_Invalid(t *testing.T) {
	_, err := parseData([]string{"novalue"})
	require.Error(t, err)

	_, err = parseData([]string{"=orphan"})
	require.Error(t, err)
}

func TestPrintRecord(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	rec := &model.LockRecord{
		Status:   model.StatusLocked,
		Action:   model.ActionLock,
		Location: "/tmp/locks/srv1.lock",
		Payload:  map[string]any{"contact": "Billy Jenkins", "attempt": 2},
	}

	out := captureStdout(t, func() { printRecord("srv1", rec) })
	assert.Contains(t, out, "Object: srv1")
	assert.Contains(t, out, "Status: locked")
	assert.Contains(t, out, "Location: /tmp/locks/srv1.lock")
	assert.Contains(t, out, "attempt: 2")
	assert.Contains(t, out, "contact: Billy Jenkins")
	// payload keys print sorted
	assert.Less(t, strings.Index(out, "attempt"), strings.Index(out, "contact"))
}

func TestPrintRecord_Unlocked(t *testing.T) {
	rec := &model.LockRecord{Status: model.StatusUnlocked, Action: model.ActionStatus}
	out := captureStdout(t, func() { printRecord("srv1", rec) })
	assert.Contains(t, out, "Status: unlocked")
	assert.NotContains(t, out, "Location:")
}

func TestRootCommand_LockThenStatus(t *testing.T) {
	t.Setenv("LATCH_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"lock", "srv1", "--dir", dir, "--data", "contact=Billy Jenkins"})
	out := captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	assert.Contains(t, out, "Status:")

	_, err := os.Stat(filepath.Join(dir, "srv1.lock"))
	require.NoError(t, err)

	rootCmd.SetArgs([]string{"status", "srv1", "--dir", dir})
	out = captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	assert.Contains(t, out, "contact: Billy Jenkins")
}

func TestRootCommand_Sweep_DryRun(t *testing.T) {
	t.Setenv("LATCH_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"lock", "old", "--dir", dir, "--data", "expire=2019-12-20 00:00:00"})
	captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })

	rootCmd.SetArgs([]string{"sweep", "--dir", dir, "--dry-run"})
	out := captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	assert.Contains(t, out, "Expired: 1")
	assert.Contains(t, out, "Dry run: nothing removed")

	_, err := os.Stat(filepath.Join(dir, "old.lock"))
	assert.NoError(t, err, "dry run must not delete")
}
