package domain

import "errors"

// Domain errors returned by the public API; check with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("wordvet: invalid configuration")

	// ErrNoWordBlock is returned when the source file does not contain
	// the expected exported word-array block.
	ErrNoWordBlock = errors.New("wordvet: word array block not found in source file")

	// ErrAttemptsExhausted is returned by the fetcher when the retry
	// budget is spent on transient transport failures.
	ErrAttemptsExhausted = errors.New("wordvet: retry attempts exhausted")
)
