package captcha

import (
	"context"
	"net/http"
	"postboard/internal/core/services/captcha"
)

const (
	CAPTCHA_TOKEN_HEADER  = "X-Captcha-Token"
	CAPTCHA_TOKEN_MAX_LEN = 4096
)

// SetCaptchaTokenToContext passes the captcha token header on to captcha
// protected services. Oversized tokens are dropped and fail validation.
func SetCaptchaTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CAPTCHA_TOKEN_HEADER)
		if token != "" && len(token) <= CAPTCHA_TOKEN_MAX_LEN {
			ctx := context.WithValue(r.Context(), captcha.CONTEXT_CAPTCHA_TOKEN_KEY, captcha.CaptchaToken(token))
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
