package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrDuplicateOrderID = errors.New("booking with this order ID already exists")
)
