package passwordchangedevent

import (
	"context"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"time"
)

type hasUserID interface {
	GetUserID() user.ID
}

type service[T any, S hasUserID] struct {
	log       logging.Logger
	publisher user.EventPublisher
	now       func() time.Time
	inner     services.Service[T, S]
}

// WithPasswordChangedEvent publishes a password change after inner succeeds.
// A publishing failure is logged only, the password is already changed.
func WithPasswordChangedEvent[T any, S hasUserID](
	log logging.Logger,
	publisher user.EventPublisher,
	now func() time.Time,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{log: log, publisher: publisher, now: now, inner: inner}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	event := user.NewPasswordChangedEvent(result.GetUserID(), s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error(
			ctx,
			"Could not publish password changed event.",
			logging.Entry("userID", event.UserID),
			logging.Entry("err", err),
		)
	}
	return result, nil
}
