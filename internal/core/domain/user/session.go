package user

import (
	"time"
)

type SessionToken string

type SessionClaims struct {
	UserID   ID
	IssuedAt time.Time
}

type SessionIssuer interface {
	IssueToken(u User) (SessionToken, error)
	ParseToken(token SessionToken) (SessionClaims, error)
}

// IsSessionValid reports whether a session issued at claims.IssuedAt survives
// the latest password change. Session timestamps have a precision of one second.
func (u *User) IsSessionValid(claims SessionClaims) bool {
	if claims.UserID != u.ID {
		return false
	}
	if !u.PasswordChangedAt.IsPresent {
		return true
	}
	return !claims.IssuedAt.Before(u.PasswordChangedAt.Value.Truncate(time.Second))
}
