package checkout

import "time"

// Status is the reservation lifecycle state. Exactly one orchestrator
// invocation owns the transition into creating; completed is absorbing,
// failed may be reacquired for an explicit retry.
type Status string

const (
	StatusCreating  Status = "creating"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// StaleLockReason is recorded when an abandoned creating row is reconciled.
const StaleLockReason = "stale_lock_timeout"

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreating, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusCreating:
		return next == StatusCompleted || next == StatusFailed
	case StatusFailed:
		return next == StatusCreating
	default:
		return false
	}
}

// IsStaleLock reports whether a creating row has exceeded the staleness
// window and should be treated as abandoned.
func IsStaleLock(status Status, createdAt, now time.Time, window time.Duration) bool {
	return status == StatusCreating && now.Sub(createdAt) > window
}
