package user

import (
	"context"
	c "postboard/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	Username     Username
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByEmailForUpdate locks the account until the surrounding unit of work ends.
	GetByEmailForUpdate(ctx context.Context, email c.Email) (User, error)
	SetPasswordReset(ctx context.Context, id ID, reset c.Optional[PasswordResetState]) error
	// SetPassword replaces the credential and clears any pending reset in one write.
	SetPassword(ctx context.Context, id ID, password PasswordHash, at time.Time) error
}
