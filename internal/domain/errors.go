package domain

import "errors"

// Messages mirror the status text the managed service returns, so callers can
// match on them in command output.
var (
	ErrAlreadyExists   = errors.New("Already exists")
	ErrInvalidArgument = errors.New("Invalid argument")
	ErrNotFound        = errors.New("Not found")
)
