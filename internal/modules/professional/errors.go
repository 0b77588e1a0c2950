package professional

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrReferential    = errors.New("referential")
	ErrConflict       = errors.New("conflict")
)
