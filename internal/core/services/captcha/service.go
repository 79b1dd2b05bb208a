package captcha

import (
	"context"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/services"
)

type contextCaptchaToken string

const CONTEXT_CAPTCHA_TOKEN_KEY = contextCaptchaToken("captchaToken")

type service[T any, S any] struct {
	log       logging.Logger
	validator CaptchaValidator
	inner     services.Service[T, S]
}

// WithCaptcha runs inner only if the captcha token stored in the context by
// the HTTP layer passes validation.
func WithCaptcha[T any, S any](
	log logging.Logger,
	validator CaptchaValidator,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if validator == nil {
		panic(e.NewNilArgumentError("validator"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		log:       log,
		validator: validator,
		inner:     inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	token, _ := ctx.Value(CONTEXT_CAPTCHA_TOKEN_KEY).(CaptchaToken)
	if !s.validator.ValidateCaptchaToken(ctx, token) {
		s.log.Info(ctx, "Captcha rejected.", logging.Entry("tokenProvided", !token.IsZero()))
		return result, ErrInvalidCaptcha
	}
	return s.inner.Run(ctx, input)
}
