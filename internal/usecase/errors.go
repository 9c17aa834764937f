package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrStageFailed wraps the first error that halts a pipeline run;
	// the failing stage name is carried in the wrapping message.
	ErrStageFailed = errors.New("pipeline stage failed")

	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
