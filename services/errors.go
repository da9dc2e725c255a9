package services

import "errors"

// Error kinds returned by the food map services. Wrap them with
// fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrAlreadyExists       = errors.New("already exists")
)
