package errors

import "errors"

var (
	ErrNotFound = errors.New("experience not found")

	ErrInvalidID = errors.New("invalid experience ID format")

	// ErrConditionFailed means the conditional seat increment matched no slot:
	// the slot is gone, full, or its capacity changed since it was read.
	ErrConditionFailed = errors.New("slot no longer satisfies the reservation condition")
)
