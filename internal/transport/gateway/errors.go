package gateway

import (
	"errors"
	"fmt"
)

var ErrMissingCredentials = errors.New("gateway credentials are not set")

type StatusCodeError struct {
	Code int
}

func NewStatusCodeError(code int) *StatusCodeError {
	return &StatusCodeError{Code: code}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("Unexpected status code %d", e.Code)
}
