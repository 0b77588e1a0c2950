package category

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrConflict       = errors.New("conflict")
)
