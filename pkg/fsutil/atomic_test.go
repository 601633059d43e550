package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/latch-project/latch/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lock")

	err := fsutil.AtomicWrite(path, []byte("hello"), 0644)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestAtomicWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lock")

	require.NoError(t, fsutil.AtomicWrite(path, []byte("first"), 0644))
	require.NoError(t, fsutil.AtomicWrite(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestAtomicWrite_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.lock")

	require.NoError(t, fsutil.AtomicWrite(path, []byte("data"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.lock", entries[0].Name())
}

func TestAtomicWrite_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.lock")
	err := fsutil.AtomicWrite(path, []byte("data"), 0644)
	require.Error(t, err)
}

func TestWriteExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srv1.lock")

	err := fsutil.WriteExclusive(path, []byte("payload"), 0644)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestWriteExclusive_FailsIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srv1.lock")

	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	err := fsutil.WriteExclusive(path, []byte("usurper"), 0644)
	require.Error(t, err)
	assert.True(t, os.IsExist(err))

	// The original file is untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestFsyncDir(t *testing.T) {
	assert.NoError(t, fsutil.FsyncDir(t.TempDir()))
}

func TestFsyncDir_Missing(t *testing.T) {
	assert.Error(t, fsutil.FsyncDir(filepath.Join(t.TempDir(), "missing")))
}
