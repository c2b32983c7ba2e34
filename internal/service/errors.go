package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrRegistrationClosed = errors.New("registration is disabled")
)
