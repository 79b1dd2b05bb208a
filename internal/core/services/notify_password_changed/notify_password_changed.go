package notifypasswordchanged

import (
	"context"
	"errors"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"time"
)

type Input struct {
	UserID user.ID
	At     time.Time
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	noticeSender   user.PasswordChangedNoticeSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	noticeSender user.PasswordChangedNoticeSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if noticeSender == nil {
		panic(e.NewNilArgumentError("noticeSender"))
	}
	return &service{log: log, userRepository: userRepository, noticeSender: noticeSender}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Skip password changed notice, user does not exist.", logging.Entry("userID", input.UserID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	if err := s.noticeSender.SendPasswordChangedNotice(ctx, u, input.At); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(ctx, "Password changed notice has been sent.", logging.Entry("userID", u.ID))
	return result, nil
}
