package events

import (
	"net/http"
	"net/http/httptest"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	service "postboard/internal/core/services/get_user_by_session_token"
	"postboard/internal/http/handlers/handlertest"
	"testing"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

type fakeService = handlertest.FakeService[service.Input, service.Result]

func TestUnauthorized(t *testing.T) {
	handler := New(logging.NewFakeLogger(), sse.New(), &fakeService{ReturnError: user.ErrInvalidSessionToken})

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/events?stream=1&token=abc", nil))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestForeignStream(t *testing.T) {
	server := sse.New()
	handler := New(logging.NewFakeLogger(), server, &fakeService{Result: service.Result{User: user.User{ID: 1}}})

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/events?stream=2&token=abc", nil))

	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.False(t, server.StreamExists("2"))
}
