package rest

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrNotFound     = errors.New("resource not found")
	ErrPinRejected  = errors.New("backend rejected pin")
)

// statusError сохраняет HTTP-код для решения о ретрае.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("unexpected status %d", e.code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.message)
}
