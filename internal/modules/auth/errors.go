package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUnauthorized       = errors.New("unauthorized")
)
