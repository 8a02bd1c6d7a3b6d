package football

import (
	"errors"
	"fmt"
)

var (
	// ErrLockPool means the lock pool could not be allocated.
	ErrLockPool = errors.New("lock pool allocation failed")
	// ErrCreateFailed means a player or the referee could not be created.
	ErrCreateFailed = errors.New("unit creation failed")
	// ErrCheckinTimeout means a team did not check in in time.
	ErrCheckinTimeout = errors.New("players took too long to check in")
)

// SpawnError describes a team that could not be put on the field.
type SpawnError struct {
	Role      Role
	Kind      error // ErrCreateFailed or ErrCheckinTimeout
	CheckedIn int64 // Total check-ins when the spawn gave up
	Want      int64 // Total check-ins the barrier was waiting for
	Err       error // Underlying cause, if any
}

func (e *SpawnError) Error() string {
	msg := fmt.Sprintf("spawn %s: %v (%d of %d checked in)", e.Role, e.Kind, e.CheckedIn, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *SpawnError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
