// Package pathutil resolves and validates lock file paths for latch.
package pathutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/latch-project/latch/pkg/errclass"
)

// LockSuffix is the file extension of every lock file. External audit and
// expiry tooling scans on this suffix, so it never changes.
const LockSuffix = ".lock"

// ValidateObjectName checks that a lock object name is safe to use as a file
// name component inside the lock directory.
func ValidateObjectName(name string) error {
	if name == "" {
		return errclass.ErrNameInvalid.WithMessage("lock object name must not be empty")
	}

	// NFC normalize
	name = norm.NFC.String(name)

	if strings.Contains(name, "..") {
		return errclass.ErrNameInvalid.WithMessagef("lock object name must not contain '..': %s", name)
	}

	if strings.ContainsAny(name, "/\\") {
		return errclass.ErrNameInvalid.WithMessagef("lock object name must not contain separators: %s", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errclass.ErrNameInvalid.WithMessagef("lock object name must not contain control characters: %q", name)
		}
	}

	return nil
}

// LockPath maps a lock directory and object name to the canonical lock file
// path <dir>/<object>.lock. The object name is validated first so a crafted
// name can never escape the lock directory.
func LockPath(dir, object string) (string, error) {
	if err := ValidateObjectName(object); err != nil {
		return "", err
	}
	return filepath.Join(dir, object+LockSuffix), nil
}
