package auth

import (
	"context"
	"net/http"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services/auth"
	"strings"
)

const (
	AUTH_TOKEN_PREFIX      = "Bearer "
	AUTH_TOKEN_MAX_LEN     = 1024
	AUTH_TOKEN_QUERY_PARAM = "token"
)

// ParseToken reads a bearer session token from the Authorization header. The
// scheme is matched case-insensitively.
func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := strings.TrimSpace(r.Header.Get("authorization"))
	if len(header) <= len(AUTH_TOKEN_PREFIX) {
		return token, false
	}
	if !strings.EqualFold(header[:len(AUTH_TOKEN_PREFIX)], AUTH_TOKEN_PREFIX) {
		return token, false
	}
	return checkToken(strings.TrimSpace(header[len(AUTH_TOKEN_PREFIX):]))
}

// ParseQueryToken reads a session token from the query string, for clients
// such as EventSource that cannot set headers.
func ParseQueryToken(r *http.Request) (token user.SessionToken, ok bool) {
	return checkToken(r.URL.Query().Get(AUTH_TOKEN_QUERY_PARAM))
}

func checkToken(raw string) (token user.SessionToken, ok bool) {
	if raw == "" || len(raw) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(raw), true
}

// WithToken returns ctx carrying token for auth.WithAuthentication.
func WithToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, auth.CONTEXT_AUTH_TOKEN_KEY, token)
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := ParseToken(r); ok {
			r = r.WithContext(WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
