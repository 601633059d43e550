package pathutil_test

import (
	"path/filepath"
	"testing"

	"github.com/latch-project/latch/pkg/errclass"
	"github.com/latch-project/latch/pkg/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateObjectName_Invalid tests names that must be rejected.
func TestValidateObjectName_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"..",
		"foo..bar",
		"..foo",
		"foo..",
		"foo/bar",
		"/foo",
		"foo/",
		`foo\bar`,
		"foo\x00bar",
		"foo\nbar",
		"foo\tbar",
	}

	for _, name := range invalid {
		t.Run(name, func(t *testing.T) {
			err := pathutil.ValidateObjectName(name)
			require.ErrorIs(t, err, errclass.ErrNameInvalid, "should reject: %q", name)
		})
	}
}

// TestValidateObjectName_Valid tests acceptable object names.
func TestValidateObjectName_Valid(t *testing.T) {
	valid := []string{
		"a",
		"srv1",
		"server-cluster3w1-2",
		"switch.rack12",
		"db_primary",
		"haproxy.cfg",
		".",
		"-",
		"_",
	}

	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, pathutil.ValidateObjectName(name), "should accept: %q", name)
		})
	}
}

func TestLockPath(t *testing.T) {
	path, err := pathutil.LockPath("/tmp/locks/", "srv1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/locks", "srv1.lock"), path)
}

func TestLockPath_PreservesNamingConvention(t *testing.T) {
	// <dir>/<object>.lock is a wire-level contract with external scanners.
	path, err := pathutil.LockPath("/var/run/latch", "server-cluster3w1-2")
	require.NoError(t, err)
	assert.Equal(t, "/var/run/latch/server-cluster3w1-2.lock", path)
}

func TestLockPath_InvalidName(t *testing.T) {
	_, err := pathutil.LockPath("/tmp/locks", "../etc/passwd")
	require.ErrorIs(t, err, errclass.ErrNameInvalid)
}

func TestLockPath_DistinctDirectoriesAreIndependent(t *testing.T) {
	a, err := pathutil.LockPath("/tmp/a", "srv1")
	require.NoError(t, err)
	b, err := pathutil.LockPath("/tmp/b", "srv1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
