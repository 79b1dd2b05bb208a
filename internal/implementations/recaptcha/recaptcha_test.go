package recaptcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/services/captcha"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T, handler http.HandlerFunc) *GoogleRecaptchaValidator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	validator := New(logging.NewFakeLogger(), "secret", 0.5, time.Second)
	validator.verificationURL = server.URL
	return validator
}

func TestValidateCaptchaToken(t *testing.T) {
	cases := []struct {
		id       string
		status   int
		body     string
		expected bool
	}{
		{id: "success", status: http.StatusOK, body: `{"success": true, "score": 0.9}`, expected: true},
		{id: "low score", status: http.StatusOK, body: `{"success": true, "score": 0.1}`, expected: false},
		{id: "invalid token", status: http.StatusOK, body: `{"success": false, "error-codes": ["invalid-input-response"]}`, expected: false},
		{id: "google unavailable", status: http.StatusServiceUnavailable, body: ``, expected: true},
		{id: "malformed response", status: http.StatusOK, body: `{`, expected: true},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			validator := newTestValidator(t, func(rw http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				require.Equal(t, "secret", r.PostForm.Get("secret"))
				require.Equal(t, "token", r.PostForm.Get("response"))
				rw.WriteHeader(testcase.status)
				rw.Write([]byte(testcase.body))
			})

			ok := validator.ValidateCaptchaToken(context.Background(), captcha.CaptchaToken("token"))

			require.Equal(t, testcase.expected, ok)
		})
	}
}

func TestMissingTokenIsRejectedWithoutRequest(t *testing.T) {
	called := false
	validator := newTestValidator(t, func(rw http.ResponseWriter, r *http.Request) {
		called = true
	})

	require.False(t, validator.ValidateCaptchaToken(context.Background(), ""))
	require.False(t, called)
}
