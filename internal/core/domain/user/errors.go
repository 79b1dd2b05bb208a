package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidPassword       = errors.New("password must be between 8 and 256 characters")
	ErrInvalidSessionToken   = errors.New("invalid session token")
)

var (
	ErrInvalidPasswordResetCode = errors.New("invalid or expired password reset code")
	ErrPasswordResetCodeNotSent = errors.New("password reset code could not be sent")
)
