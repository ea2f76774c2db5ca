package pin

import "errors"

var (
	ErrInvalidPin      = errors.New("pin must be exactly 4 digits")
	ErrOrderNotTracked = errors.New("order is not tracked")
	ErrAlreadyVerified = errors.New("handoff already verified")
)
