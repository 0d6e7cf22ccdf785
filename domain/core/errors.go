package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDomain marks any input outside its valid mathematical domain.
	// The engine never clamps or recovers; the caller gets it back as-is.
	ErrDomain = errors.New("parameter outside valid domain")

	ErrAlphaOutOfRange   = fmt.Errorf("%w: alpha must be in (0,1)", ErrDomain)
	ErrPowerOutOfRange   = fmt.Errorf("%w: power must be in (0,1)", ErrDomain)
	ErrMDENotPositive    = fmt.Errorf("%w: mde must be > 0", ErrDomain)
	ErrFractionOutOfOpen = fmt.Errorf("%w: allocation fraction must be in (0,1)", ErrDomain)
	ErrSampleNotPositive = fmt.Errorf("%w: total sample size must be > 0", ErrDomain)
)

// NewDomainError builds a domain error carrying the offending parameter and value
func NewDomainError(param string, value float64, reason string) error {
	return fmt.Errorf("%w: %s=%g (%s)", ErrDomain, param, value, reason)
}

// IsDomainError checks whether err originates from an out-of-domain input
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}
