package captcha

import (
	"context"
	"errors"
)

var ErrInvalidCaptcha = errors.New("invalid captcha")

type CaptchaToken string

func (t CaptchaToken) IsZero() bool {
	return string(t) == ""
}

type CaptchaValidator interface {
	ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool
}

// AllowAlwaysCaptchaValidator accepts any token, including none. It is used
// in test mode where end-to-end suites cannot solve captchas.
type AllowAlwaysCaptchaValidator struct{}

func NewAllowAlwaysCaptchaValidator() *AllowAlwaysCaptchaValidator {
	return &AllowAlwaysCaptchaValidator{}
}

func (v *AllowAlwaysCaptchaValidator) ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool {
	return true
}
