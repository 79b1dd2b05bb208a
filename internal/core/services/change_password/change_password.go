package changepassword

import (
	"context"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"postboard/internal/core/services/auth"
	"time"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

// Result carries a fresh session token, sessions issued before the change stop working.
type Result struct {
	User  user.User
	Token user.SessionToken
}

func (r Result) GetUserID() user.ID {
	return r.User.ID
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	sessionIssuer  user.SessionIssuer
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionIssuer user.SessionIssuer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionIssuer == nil {
		panic(e.NewNilArgumentError("sessionIssuer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		passwordHasher: passwordHasher,
		userRepository: userRepository,
		sessionIssuer:  sessionIssuer,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	isCurrentPasswordValid := s.passwordHasher.ValidatePassword(
		input.CurrentPassword,
		input.User.PasswordHash,
	)
	if !isCurrentPasswordValid {
		return result, user.ErrInvalidCredentials
	}
	if err := input.NewPassword.Validate(); err != nil {
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	now := s.now()
	if err := s.userRepository.SetPassword(ctx, input.User.ID, newPasswordHash, now); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	u := input.User
	u.PasswordHash = newPasswordHash
	u.PasswordChangedAt = c.Some(now)
	u.PasswordReset = c.None[user.PasswordResetState]()

	token, err := s.sessionIssuer.IssueToken(u)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(ctx, "Password has been changed.", logging.Entry("userID", u.ID))
	return Result{User: u, Token: token}, nil
}
