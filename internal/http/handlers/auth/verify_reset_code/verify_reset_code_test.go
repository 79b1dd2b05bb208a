package verifyresetcode

import (
	"errors"
	"net/http"
	c "postboard/internal/core/domain/common"
	ratelimiter "postboard/internal/core/domain/rate_limiter"
	"postboard/internal/core/domain/user"
	verifypasswordresetcode "postboard/internal/core/services/verify_password_reset_code"
	"postboard/internal/http/handlers/handlertest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeService = handlertest.FakeService[verifypasswordresetcode.Input, verifypasswordresetcode.Result]

var validBody = map[string]string{"email": "Test@test.test", "token": "012345"}

func TestValidCode(t *testing.T) {
	service := &fakeService{}

	rw := handlertest.Do(New(service), http.MethodPost, "/verify-reset-code", validBody)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, true, handlertest.DecodeJSON(rw)["valid"])
	require.Equal(t, c.Email("test@test.test"), service.Inputs[0].Email)
	require.Equal(t, user.PasswordResetCode("012345"), service.Inputs[0].Code)
}

func TestInvalidCode(t *testing.T) {
	rw := handlertest.Do(
		New(&fakeService{ReturnError: user.ErrInvalidPasswordResetCode}),
		http.MethodPost,
		"/verify-reset-code",
		validBody,
	)

	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.Equal(t, InvalidCodeMessage, handlertest.DecodeJSON(rw)["error"])
}

func TestErrors(t *testing.T) {
	rw := handlertest.Do(
		New(&fakeService{ReturnError: ratelimiter.ErrRateLimitExceeded}),
		http.MethodPost,
		"/verify-reset-code",
		validBody,
	)
	require.Equal(t, http.StatusTooManyRequests, rw.Code)

	rw = handlertest.Do(New(&fakeService{ReturnError: errors.New("db is down")}), http.MethodPost, "/", validBody)
	require.Equal(t, http.StatusInternalServerError, rw.Code)
}

func TestValidation(t *testing.T) {
	service := &fakeService{}
	rw := handlertest.Do(New(service), http.MethodPost, "/verify-reset-code", map[string]string{"email": "a@a.aa"})
	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.Contains(t, handlertest.DecodeJSON(rw), "token")
	require.Empty(t, service.Inputs)
}

func TestPaddedEmailIsNormalized(t *testing.T) {
	service := &fakeService{}

	rw := handlertest.Do(New(service), http.MethodPost, "/verify-reset-code", map[string]string{
		"email": "  Test@Test.test\t",
		"token": "012345",
	})

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, c.Email("test@test.test"), service.Inputs[0].Email)
}
