package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrStorageFailure  = errors.New("storage failure")
	ErrStopRejected    = errors.New("nothing to stop: no time has elapsed")
	ErrSessionTooShort = errors.New("session shorter than one minute was not saved")
	ErrTimerBusy       = errors.New("timer is running; reset or finish the session first")
	ErrUnknownCategory = errors.New("unknown category")
)
