// Package model defines the shared value types for latch lock records.
package model

import "github.com/latch-project/latch/pkg/errclass"

// Status reflects on-disk existence of a lock file at completion of an operation.
type Status string

const (
	StatusLocked   Status = "locked"
	StatusUnlocked Status = "unlocked"
)

// Action is one of the three lock operations.
type Action string

const (
	ActionStatus Action = "status"
	ActionLock   Action = "lock"
	ActionUnlock Action = "unlock"
)

// ParseAction validates an action string. The empty string defaults to
// ActionStatus; anything outside the three-value set is rejected.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case "":
		return ActionStatus, nil
	case ActionStatus, ActionLock, ActionUnlock:
		return Action(s), nil
	}
	return "", errclass.ErrActionInvalid.WithMessagef("unknown lock action: %q", s)
}

// Reserved document keys written into every lock file. External scanners key
// off these names, so they are part of the wire format.
const (
	KeyStatus   = "lock_file_status"
	KeyLocation = "lock_file_location"
	KeyAction   = "lock_action"
)

// LockRecord is the result of a lock operation. It is constructed fresh on
// every call and never cached between calls.
type LockRecord struct {
	Status   Status
	Action   Action
	Location string // resolved lock file path; empty iff Status == unlocked
	Payload  map[string]any
}

// Document renders the record as the wire mapping: payload keys first, then
// the reserved keys overlaid last so caller data can never shadow them.
// Location serializes as null when unlocked.
func (r *LockRecord) Document() map[string]any {
	doc := make(map[string]any, len(r.Payload)+3)
	for k, v := range r.Payload {
		doc[k] = v
	}
	doc[KeyStatus] = string(r.Status)
	doc[KeyAction] = string(r.Action)
	if r.Location == "" {
		doc[KeyLocation] = nil
	} else {
		doc[KeyLocation] = r.Location
	}
	return doc
}

// MergePayload overlays caller keys on top of the on-disk payload. Reserved
// keys are stripped from both sides; the engine re-derives them per call.
func MergePayload(onDisk, caller map[string]any) map[string]any {
	merged := make(map[string]any, len(onDisk)+len(caller))
	for k, v := range onDisk {
		merged[k] = v
	}
	for k, v := range caller {
		merged[k] = v
	}
	delete(merged, KeyStatus)
	delete(merged, KeyLocation)
	delete(merged, KeyAction)
	return merged
}

// StripReserved returns a copy of doc without the reserved keys.
func StripReserved(doc map[string]any) map[string]any {
	return MergePayload(doc, nil)
}
