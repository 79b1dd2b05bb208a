package user

import (
	"context"
	c "postboard/internal/core/domain/common"
	"time"
)

const PasswordResetCodeLength = 6

type PasswordResetCode string

func (code PasswordResetCode) String() string {
	return "***"
}

type PasswordResetCodeDigest string

// PasswordResetState is the pending reset of an account. An account holds at
// most one, and issuing a new code replaces it.
type PasswordResetState struct {
	CodeDigest PasswordResetCodeDigest
	ExpiresAt  time.Time
}

func NewPasswordResetState(
	u User,
	code PasswordResetCode,
	digester PasswordResetCodeDigester,
	expiresAt time.Time,
) c.Optional[PasswordResetState] {
	return c.Some(PasswordResetState{
		CodeDigest: digester.Digest(u.ID, code),
		ExpiresAt:  expiresAt,
	})
}

// IsPasswordResetCodeValid is the single validity check shared by code
// verification and code consumption.
func (u *User) IsPasswordResetCodeValid(
	code PasswordResetCode,
	digester PasswordResetCodeDigester,
	now time.Time,
) bool {
	if !u.PasswordReset.IsPresent {
		return false
	}
	state := u.PasswordReset.Value
	if !now.Before(state.ExpiresAt) {
		return false
	}
	return digester.Matches(u.ID, code, state.CodeDigest)
}

type PasswordResetCodeGenerator interface {
	GeneratePasswordResetCode() (PasswordResetCode, error)
}

type PasswordResetCodeDigester interface {
	Digest(userID ID, code PasswordResetCode) PasswordResetCodeDigest
	Matches(userID ID, code PasswordResetCode, digest PasswordResetCodeDigest) bool
}

type PasswordResetCodeSender interface {
	SendPasswordResetCode(ctx context.Context, u User, code PasswordResetCode) error
}
