package errclass_test

import (
	"errors"
	"testing"

	"github.com/latch-project/latch/pkg/errclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatchError_Error_WithoutMessage(t *testing.T) {
	// When Message is empty, only Code should be returned
	err := &errclass.LatchError{Code: "E_TEST_ERROR"}
	assert.Equal(t, "E_TEST_ERROR", err.Error())
}

func TestLatchError_Error_WithMessage(t *testing.T) {
	err := &errclass.LatchError{Code: "E_TEST_ERROR", Message: "something failed"}
	assert.Equal(t, "E_TEST_ERROR: something failed", err.Error())
}

func TestLatchError_Is_SameCode(t *testing.T) {
	err := errclass.ErrLockPresent.WithMessage("lock file already present")
	require.ErrorIs(t, err, errclass.ErrLockPresent)
}

func TestLatchError_Is_DifferentCode(t *testing.T) {
	err1 := errclass.ErrLockPresent.WithMessage("message")
	err2 := errclass.ErrLockNotPresent.WithMessage("message")

	// Should not match because different Codes
	require.False(t, errors.Is(err1, err2))
	require.False(t, errors.Is(err2, err1))
}

func TestLatchError_Is_WithStandardError(t *testing.T) {
	// LatchError should not match standard errors
	err := errclass.ErrNameInvalid.WithMessage("test")
	require.False(t, errors.Is(err, errors.New("some error")))
	require.False(t, errors.Is(errors.New("some error"), err))
}

func TestLatchError_Is_Wrapped(t *testing.T) {
	wrapped := errclass.ErrLockMalformed.WithMessagef("parse %s: bad document", "x.lock")
	require.ErrorIs(t, wrapped, errclass.ErrLockMalformed)
}

func TestLatchError_WithMessage(t *testing.T) {
	baseErr := errclass.ErrNameInvalid

	// WithMessage should create a new error with the same Code
	err1 := baseErr.WithMessage("message 1")
	err2 := baseErr.WithMessage("message 2")

	assert.Equal(t, "E_NAME_INVALID", err1.Code)
	assert.Equal(t, "E_NAME_INVALID", err2.Code)
	assert.Equal(t, "message 1", err1.Message)
	assert.Equal(t, "message 2", err2.Message)

	// Original should be unchanged
	assert.Empty(t, baseErr.Message)
}

func TestLatchError_WithMessagef(t *testing.T) {
	err := errclass.ErrActionInvalid.WithMessagef("unknown lock action: %q", "frobnicate")

	assert.Equal(t, "E_ACTION_INVALID", err.Code)
	assert.Equal(t, `unknown lock action: "frobnicate"`, err.Message)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestLatchError_AllCodesDistinct(t *testing.T) {
	all := []*errclass.LatchError{
		errclass.ErrLockPresent,
		errclass.ErrLockNotPresent,
		errclass.ErrLockMalformed,
		errclass.ErrActionInvalid,
		errclass.ErrNameInvalid,
		errclass.ErrFormatUnsupported,
	}
	seen := make(map[string]bool)
	for _, e := range all {
		assert.NotEmpty(t, e.Code)
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
	}
}
