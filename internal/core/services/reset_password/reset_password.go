package resetpassword

import (
	"context"
	"errors"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	uow "postboard/internal/core/domain/unit_of_work"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"time"
)

type Input struct {
	Email       c.Email
	Code        user.PasswordResetCode
	NewPassword user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "password-reset-code-attempt::" + string(i.Email)
}

type Result struct {
	User user.User
}

func (r Result) GetUserID() user.ID {
	return r.User.ID
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	codeDigester   user.PasswordResetCodeDigester
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	codeDigester user.PasswordResetCodeDigester,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if codeDigester == nil {
		panic(e.NewNilArgumentError("codeDigester"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		codeDigester:   codeDigester,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.NewPassword.Validate(); err != nil {
		return result, err
	}
	// Hashing is slow, it is done before the account gets locked.
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByEmailForUpdate(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidPasswordResetCode
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	now := s.now()
	if !u.IsPasswordResetCodeValid(input.Code, s.codeDigester, now) {
		s.log.Info(ctx, "Invalid password reset code presented.", logging.Entry("userID", u.ID))
		return result, user.ErrInvalidPasswordResetCode
	}

	if err := uow.Users().SetPassword(ctx, u.ID, newPasswordHash, now); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	u.PasswordHash = newPasswordHash
	u.PasswordChangedAt = c.Some(now)
	u.PasswordReset = c.None[user.PasswordResetState]()
	s.log.Info(ctx, "Password has been reset.", logging.Entry("userID", u.ID))
	return Result{User: u}, nil
}
