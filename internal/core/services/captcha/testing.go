package captcha

import "context"

type FakeCaptchaValidator struct {
	ValidToken CaptchaToken
	Checked    []CaptchaToken
}

func NewFakeCaptchaValidator(validToken string) *FakeCaptchaValidator {
	return &FakeCaptchaValidator{ValidToken: CaptchaToken(validToken)}
}

func (v *FakeCaptchaValidator) ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool {
	v.Checked = append(v.Checked, token)
	return !token.IsZero() && token == v.ValidToken
}
