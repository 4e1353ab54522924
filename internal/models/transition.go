package models

import "errors"

// ErrRecordNotFound is returned when a moderation action targets an id that
// is no longer in the store
var ErrRecordNotFound = errors.New("record not found")

// ErrParentNotFound is returned when a submission references an idea that
// does not exist or is not yet approved
var ErrParentNotFound = errors.New("parent idea not found or not approved")

// NotificationOutcome reports what happened to the best-effort dispatch
// that follows a committed transition. It is informational only; callers
// must never use it to unwind the persisted status change.
type NotificationOutcome string

const (
	NotificationSent    NotificationOutcome = "sent"
	NotificationFailed  NotificationOutcome = "failed"
	NotificationSkipped NotificationOutcome = "skipped"
)

// TransitionResult is the two-phase outcome of an approve/reject: the
// persisted record plus the separate notification outcome.
type TransitionResult struct {
	Record       Record              `json:"record"`
	Notification NotificationOutcome `json:"notification"`
}
