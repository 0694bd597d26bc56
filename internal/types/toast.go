package types

import "time"

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// TTL is how long a toast of this level stays on screen. Errors linger
// longest so a failed sync is not missed between auto-refreshes.
func (l ToastLevel) TTL() time.Duration {
	switch l {
	case ToastError:
		return 8 * time.Second
	case ToastWarning:
		return 5 * time.Second
	default:
		return 3 * time.Second
	}
}

// Toast is a transient notification shown over the board
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// NewToast builds a toast that expires after its level's TTL
func NewToast(level ToastLevel, message string) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(level.TTL()),
	}
}

// Expired reports whether the toast should be dropped as of now
func (t Toast) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
