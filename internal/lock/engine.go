// Package lock implements the lock state engine: the read-guard-act cycle
// that maps a (directory, object) pair to a lock file and applies the
// status, lock, and unlock actions against it.
package lock

import (
	"fmt"
	"os"

	"github.com/latch-project/latch/pkg/codec"
	"github.com/latch-project/latch/pkg/errclass"
	"github.com/latch-project/latch/pkg/fsutil"
	"github.com/latch-project/latch/pkg/model"
	"github.com/latch-project/latch/pkg/pathutil"
)

const lockFileMode = 0644

// Engine applies lock actions. It holds no state between calls; the lock
// file's existence is the sole source of truth.
type Engine struct {
	codec codec.Codec
}

// NewEngine creates an engine using the given codec. A nil codec selects YAML.
func NewEngine(c codec.Codec) *Engine {
	if c == nil {
		c = codec.YAML{}
	}
	return &Engine{codec: c}
}

// Request describes one lock operation.
type Request struct {
	Directory string
	Object    string
	Payload   map[string]any // caller metadata merged into the result
	Action    model.Action   // empty defaults to status
	// EnsureUnlocked rejects the call with ErrLockPresent if a lock file
	// already exists. EnsureLocked rejects with ErrLockNotPresent if none
	// does. Both may be set; each is checked independently, so callers that
	// combine them carry the conflicting logic themselves.
	EnsureUnlocked bool
	EnsureLocked   bool
}

// Apply performs one atomic read-guard-act cycle and returns a fresh record.
// On error the filesystem is left unchanged.
func (e *Engine) Apply(req Request) (*model.LockRecord, error) {
	action, err := model.ParseAction(string(req.Action))
	if err != nil {
		return nil, err
	}

	path, err := pathutil.LockPath(req.Directory, req.Object)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.Directory, 0755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	exists := IsLockedPath(path)
	if req.EnsureUnlocked && exists {
		return nil, errclass.ErrLockPresent.WithMessagef("lock file already present: %s", path)
	}
	if req.EnsureLocked && !exists {
		return nil, errclass.ErrLockNotPresent.WithMessagef("lock file expected but not present: %s", path)
	}

	switch action {
	case model.ActionStatus:
		return e.status(path, req.Payload)
	case model.ActionLock:
		// Under EnsureUnlocked the write itself re-checks existence via
		// O_EXCL, narrowing the guard-to-write race to the filesystem's own
		// create-exclusive atomicity.
		return e.lock(path, req.Payload, req.EnsureUnlocked)
	default:
		return e.unlock(path, req.Payload)
	}
}

// IsLocked reports whether a lock file exists for the object. It never reads
// or parses content, so it succeeds even on a malformed lock file.
func (e *Engine) IsLocked(dir, object string) (bool, error) {
	path, err := pathutil.LockPath(dir, object)
	if err != nil {
		return false, err
	}
	return IsLockedPath(path), nil
}

// IsLockedPath reports whether the lock file at path exists.
func IsLockedPath(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (e *Engine) status(path string, payload map[string]any) (*model.LockRecord, error) {
	onDisk, exists, err := e.read(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &model.LockRecord{
			Status:  model.StatusUnlocked,
			Action:  model.ActionStatus,
			Payload: model.MergePayload(nil, payload),
		}, nil
	}
	return &model.LockRecord{
		Status:   model.StatusLocked,
		Action:   model.ActionStatus,
		Location: path,
		Payload:  model.MergePayload(onDisk, payload),
	}, nil
}

func (e *Engine) lock(path string, payload map[string]any, exclusive bool) (*model.LockRecord, error) {
	rec := &model.LockRecord{
		Status:   model.StatusLocked,
		Action:   model.ActionLock,
		Location: path,
		Payload:  model.MergePayload(nil, payload),
	}

	data, err := e.codec.Marshal(rec.Document())
	if err != nil {
		return nil, fmt.Errorf("marshal lock document: %w", err)
	}

	if exclusive {
		if err := fsutil.WriteExclusive(path, data, lockFileMode); err != nil {
			if os.IsExist(err) {
				return nil, errclass.ErrLockPresent.WithMessagef("lock file already present: %s", path)
			}
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		return rec, nil
	}

	if err := fsutil.AtomicWrite(path, data, lockFileMode); err != nil {
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return rec, nil
}

func (e *Engine) unlock(path string, payload map[string]any) (*model.LockRecord, error) {
	// Read first so the on-disk payload survives into the returned record.
	// A malformed file fails the call and stays in place for inspection.
	onDisk, exists, err := e.read(path)
	if err != nil {
		return nil, err
	}

	if exists {
		// A concurrent unlock may have won the delete; that collapses into
		// the same no-op success the absent-file path takes.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove lock file: %w", err)
		}
	}

	return &model.LockRecord{
		Status:  model.StatusUnlocked,
		Action:  model.ActionUnlock,
		Payload: model.MergePayload(onDisk, payload),
	}, nil
}

// read returns the on-disk payload with reserved keys stripped. The second
// return reports whether the file existed.
func (e *Engine) read(path string) (map[string]any, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read lock file: %w", err)
	}
	if len(data) == 0 {
		return nil, true, errclass.ErrLockMalformed.WithMessagef("lock file is empty: %s", path)
	}
	doc, err := e.codec.Unmarshal(data)
	if err != nil {
		return nil, true, errclass.ErrLockMalformed.WithMessagef("parse %s: %v", path, err)
	}
	return model.StripReserved(doc), true, nil
}
