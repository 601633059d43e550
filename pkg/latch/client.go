package latch

import (
	"github.com/latch-project/latch/internal/lock"
	"github.com/latch-project/latch/pkg/codec"
	"github.com/latch-project/latch/pkg/model"
)

// Client applies lock operations against a single lock directory.
type Client struct {
	dir    string
	engine *lock.Engine
}

// Options configures a Client.
type Options struct {
	// Format selects the lock file codec ("yaml", "json"); empty means yaml.
	Format string
}

// NewClient creates a client for the given lock directory. The directory is
// created on first use, not here.
func NewClient(dir string, opts Options) (*Client, error) {
	c, err := codec.ForName(opts.Format)
	if err != nil {
		return nil, err
	}
	return &Client{dir: dir, engine: lock.NewEngine(c)}, nil
}

// ApplyOptions mirrors the full engine surface for callers that drive the
// action and guards themselves.
type ApplyOptions struct {
	Payload        map[string]any
	Action         model.Action // empty defaults to status
	EnsureUnlocked bool
	EnsureLocked   bool
}

// Apply performs one lock operation against the client's directory.
func (c *Client) Apply(object string, opts ApplyOptions) (*model.LockRecord, error) {
	return c.engine.Apply(lock.Request{
		Directory:      c.dir,
		Object:         object,
		Payload:        opts.Payload,
		Action:         opts.Action,
		EnsureUnlocked: opts.EnsureUnlocked,
		EnsureLocked:   opts.EnsureLocked,
	})
}

// Status reports the lock state of object without mutating anything.
func (c *Client) Status(object string, payload map[string]any) (*model.LockRecord, error) {
	return c.Apply(object, ApplyOptions{Payload: payload, Action: model.ActionStatus})
}

// Lock creates (or overwrites) the lock file for object with the payload.
func (c *Client) Lock(object string, payload map[string]any) (*model.LockRecord, error) {
	return c.Apply(object, ApplyOptions{Payload: payload, Action: model.ActionLock})
}

// Unlock deletes the lock file for object, returning the payload that had
// been on disk. Unlocking an unlocked object is a no-op.
func (c *Client) Unlock(object string, payload map[string]any) (*model.LockRecord, error) {
	return c.Apply(object, ApplyOptions{Payload: payload, Action: model.ActionUnlock})
}

// IsLocked reports whether a lock file exists for object. Existence check
// only; the file content is never read.
func (c *Client) IsLocked(object string) (bool, error) {
	return c.engine.IsLocked(c.dir, object)
}

// IsLockedPath reports whether a lock file exists at an explicit path.
func IsLockedPath(path string) bool {
	return lock.IsLockedPath(path)
}
