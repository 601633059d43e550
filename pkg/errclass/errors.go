package errclass

import "fmt"

// LatchError is a stable, machine-readable error class.
type LatchError struct {
	Code    string
	Message string
}

func (e *LatchError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LatchError) Is(target error) bool {
	t, ok := target.(*LatchError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new LatchError with the same Code but a specific message.
func (e *LatchError) WithMessage(msg string) *LatchError {
	return &LatchError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new LatchError with a formatted message.
func (e *LatchError) WithMessagef(format string, args ...any) *LatchError {
	return &LatchError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	// ErrLockPresent: a guard required the object to be unlocked, but a lock
	// file already exists.
	ErrLockPresent = &LatchError{Code: "E_LOCK_PRESENT"}
	// ErrLockNotPresent: a guard required the object to be locked, but no lock
	// file exists.
	ErrLockNotPresent = &LatchError{Code: "E_LOCK_NOT_PRESENT"}
	// ErrLockMalformed: an existing lock file is empty or does not parse as a
	// mapping.
	ErrLockMalformed = &LatchError{Code: "E_LOCK_MALFORMED"}
	// ErrActionInvalid: requested action is outside status|lock|unlock.
	ErrActionInvalid = &LatchError{Code: "E_ACTION_INVALID"}
	// ErrNameInvalid: object name is empty or unsafe as a file name component.
	ErrNameInvalid = &LatchError{Code: "E_NAME_INVALID"}
	// ErrFormatUnsupported: unknown lock file codec name.
	ErrFormatUnsupported = &LatchError{Code: "E_FORMAT_UNSUPPORTED"}
)
