package session

import (
	"fmt"
	"postboard/internal/core/domain/user"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWT issues HS256 signed session tokens.
type JWT struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewJWT(secretKey string, validDuration time.Duration, now func() time.Time) *JWT {
	if secretKey == "" {
		panic("JWT secret key must not be empty.")
	}
	return &JWT{secretKey: []byte(secretKey), validDuration: validDuration, now: now}
}

func (j *JWT) IssueToken(u user.User) (user.SessionToken, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatInt(int64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.validDuration)),
		},
		Email: string(u.Email),
	})
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("could not sign session token: %w", err)
	}
	return user.SessionToken(signed), nil
}

func (j *JWT) ParseToken(token user.SessionToken) (claims user.SessionClaims, err error) {
	parsed := &Claims{}
	_, err = jwt.ParseWithClaims(
		string(token),
		parsed,
		func(t *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return claims, fmt.Errorf("%w: %v", user.ErrInvalidSessionToken, err)
	}
	if parsed.IssuedAt == nil {
		return claims, user.ErrInvalidSessionToken
	}
	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return claims, user.ErrInvalidSessionToken
	}
	return user.SessionClaims{UserID: user.ID(userID), IssuedAt: parsed.IssuedAt.Time}, nil
}
