package sendpasswordresetcode

import (
	"context"
	"errors"
	"fmt"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	uow "postboard/internal/core/domain/unit_of_work"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"sync/atomic"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-code::" + string(i.Email)
}

// Result is the same whether or not an account exists for the email.
type Result struct{}

type service struct {
	log           logging.Logger
	unitOfWork    uow.UnitOfWork
	codeGenerator user.PasswordResetCodeGenerator
	codeDigester  user.PasswordResetCodeDigester
	codeSender    user.PasswordResetCodeSender
	codeTTL       time.Duration
	sendTimeout   time.Duration
	now           func() time.Time
	sendLatency   sendLatency
	wait          func(ctx context.Context, d time.Duration)
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	codeGenerator user.PasswordResetCodeGenerator,
	codeDigester user.PasswordResetCodeDigester,
	codeSender user.PasswordResetCodeSender,
	codeTTL time.Duration,
	sendTimeout time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if codeGenerator == nil {
		panic(e.NewNilArgumentError("codeGenerator"))
	}
	if codeDigester == nil {
		panic(e.NewNilArgumentError("codeDigester"))
	}
	if codeSender == nil {
		panic(e.NewNilArgumentError("codeSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if codeTTL <= 0 || sendTimeout <= 0 {
		panic("codeTTL and sendTimeout must be positive")
	}
	return &service{
		log:           log,
		unitOfWork:    unitOfWork,
		codeGenerator: codeGenerator,
		codeDigester:  codeDigester,
		codeSender:    codeSender,
		codeTTL:       codeTTL,
		sendTimeout:   sendTimeout,
		now:           now,
		wait:          wait,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	code, err := s.codeGenerator.GeneratePasswordResetCode()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	u, err := s.issueCode(ctx, input.Email, code)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for an unknown account.")
		s.wait(ctx, s.sendLatency.Average())
		return result, nil
	}
	if err != nil {
		return result, err
	}

	// The account lock is released at this point, a slow delivery does not
	// block other reset operations on the account.
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	sendStartedAt := time.Now()
	err = s.codeSender.SendPasswordResetCode(sendCtx, u, code)
	if err == nil {
		s.sendLatency.Observe(time.Since(sendStartedAt))
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset code, the code stays pending.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrPasswordResetCodeNotSent, err)
	}

	s.log.Info(ctx, "Password reset code has been sent.", logging.Entry("userID", u.ID))
	return result, nil
}

func (s *service) issueCode(ctx context.Context, email c.Email, code user.PasswordResetCode) (u user.User, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return u, err
	}
	defer uow.Rollback(ctx)

	u, err = uow.Users().GetByEmailForUpdate(ctx, email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Keep the amount of work close to the one of an existing account.
		s.codeDigester.Digest(0, code)
		return u, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return u, err
	}

	reset := user.NewPasswordResetState(u, code, s.codeDigester, s.now().Add(s.codeTTL))
	if err := uow.Users().SetPasswordReset(ctx, u.ID, reset); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return u, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return u, err
	}

	u.PasswordReset = reset
	return u, nil
}

// sendLatency is a moving average of successful deliveries. Requests for
// unknown accounts wait for it, so both answers take about as long.
type sendLatency struct {
	average atomic.Int64
}

func (l *sendLatency) Observe(d time.Duration) {
	for {
		current := l.average.Load()
		next := int64(d)
		if current != 0 {
			next = current + (int64(d)-current)/8
		}
		if l.average.CompareAndSwap(current, next) {
			return
		}
	}
}

func (l *sendLatency) Average() time.Duration {
	return time.Duration(l.average.Load())
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
