package user

import (
	"fmt"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 256
)

type ID int64

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

func (p RawPassword) Validate() error {
	length := utf8.RuneCountInString(string(p))
	if length < MinPasswordLength || length > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

type User struct {
	ID                ID
	Email             c.Email
	Username          Username
	PasswordHash      PasswordHash
	CreatedAt         time.Time
	PasswordChangedAt c.Optional[time.Time]
	PasswordReset     c.Optional[PasswordResetState]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.CodeDigest == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password reset code is empty for user %d", u.ID))
	}
	return nil
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
