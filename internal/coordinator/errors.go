package coordinator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrAlreadySubmitted = errors.New("already submitted")
	ErrInvalidSlot      = errors.New("invalid slot")
	ErrNotFound         = errors.New("not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeErr wraps a raw store failure so callers match on
// ErrStoreUnavailable without seeing driver details.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
