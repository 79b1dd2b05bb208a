package verifypasswordresetcode

import (
	"context"
	"errors"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"time"
)

type Input struct {
	Email c.Email
	Code  user.PasswordResetCode
}

// Verification and consumption share one attempt budget per email.
func (i Input) GetRateLimitKey() string {
	return "password-reset-code-attempt::" + string(i.Email)
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	codeDigester   user.PasswordResetCodeDigester
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	codeDigester user.PasswordResetCodeDigester,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if codeDigester == nil {
		panic(e.NewNilArgumentError("codeDigester"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		codeDigester:   codeDigester,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.codeDigester.Matches(0, input.Code, "")
		return result, user.ErrInvalidPasswordResetCode
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if !u.IsPasswordResetCodeValid(input.Code, s.codeDigester, s.now()) {
		s.log.Info(ctx, "Invalid password reset code presented.", logging.Entry("userID", u.ID))
		return result, user.ErrInvalidPasswordResetCode
	}
	return result, nil
}
