package idle

import (
	"errors"
	"time"
)

var ErrUnsupported = errors.New("idle detection unsupported on this platform")

// Provider returns the duration since last user input on the desktop session.
type Provider interface {
	IdleDuration() (time.Duration, error)
}

func NewProvider() Provider {
	return newProvider()
}

type unsupportedProvider struct{}

func (unsupportedProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrUnsupported
}
