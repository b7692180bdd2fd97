package errors

import "errors"

var (
	ErrPodNotFound = errors.New("pod not found")

	ErrInvalidCatalog = errors.New("invalid catalog definition")
)
