package changepassword

import (
	"context"
	c "postboard/internal/core/domain/common"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const USER_ID = 123

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type suite struct {
	log      *logging.FakeLogger
	userRepo *user.FakeUserRepository
	hasher   *user.FakePasswordHasher
	issuer   *user.FakeSessionIssuer
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{ID: USER_ID, Email: "test@test.test"}}
	return &suite{
		log:      logging.NewFakeLogger(),
		userRepo: userRepo,
		hasher:   user.NewFakePasswordHasher(),
		issuer:   user.NewFakeSessionIssuer(func() time.Time { return NOW }),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.hasher, s.issuer, func() time.Time { return NOW })
}

func TestPasswordSuccessfullyChanged(t *testing.T) {
	cases := []struct {
		id                      string
		currentPassswordInDB    string
		currentPassswordInInput string
		newPasswordInInput      string
	}{
		{
			id:                      "1",
			currentPassswordInDB:    "test-password-1",
			currentPassswordInInput: "test-password-1",
			newPasswordInInput:      "test-password-2",
		},
		{
			id:                      "2",
			currentPassswordInDB:    "test-password-2",
			currentPassswordInInput: "test-password-2",
			newPasswordInInput:      "test-password-2",
		},
		{
			id:                      "3",
			currentPassswordInDB:    "aaaaaaaa",
			currentPassswordInInput: "aaaaaaaa",
			newPasswordInInput:      "bbbbbbbb",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			suite := setupSuite()
			service := suite.createService()

			// Exercise ---
			input := Input{
				CurrentPassword: user.RawPassword(testcase.currentPassswordInInput),
				NewPassword:     user.RawPassword(testcase.newPasswordInInput),
			}
			input.User.ID = USER_ID
			input.User.PasswordHash = hashPassword(testcase.currentPassswordInDB, suite.hasher)
			result, err := service.Run(context.Background(), input)

			// Verify ---
			require.NoError(t, err)
			assertPasswordValid(t, suite, testcase.newPasswordInInput)
			require.Equal(t, user.ID(USER_ID), result.GetUserID())
			require.NotEmpty(t, result.Token)
		})
	}
}

func TestPendingResetIsCleared(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.userRepo.Users[0].PasswordReset = c.Some(user.PasswordResetState{
		CodeDigest: "digest",
		ExpiresAt:  NOW.Add(time.Hour),
	})
	service := suite.createService()

	// Exercise ---
	input := Input{CurrentPassword: "test-password-1", NewPassword: "test-password-2"}
	input.User = suite.userRepo.Users[0]
	input.User.PasswordHash = hashPassword("test-password-1", suite.hasher)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.NoError(t, err)
	u, err := suite.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)
	require.False(t, u.PasswordReset.IsPresent)
	require.Equal(t, c.Some(NOW), u.PasswordChangedAt)
}

func TestCurrentPasswordInvalid(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{
		CurrentPassword: user.RawPassword("invalid-password"),
		NewPassword:     user.RawPassword("bbbbbbbb"),
	}
	input.User.ID = USER_ID
	input.User.PasswordHash = hashPassword("valid-password", suite.hasher)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
	require.Empty(t, suite.issuer.Claims)
}

func TestNewPasswordTooShort(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{
		CurrentPassword: user.RawPassword("valid-password"),
		NewPassword:     user.RawPassword("short"),
	}
	input.User.ID = USER_ID
	input.User.PasswordHash = hashPassword("valid-password", suite.hasher)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrInvalidPassword)
	u, err := suite.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)
	require.False(t, u.PasswordChangedAt.IsPresent)
}

func hashPassword(raw string, hasher user.PasswordHasher) user.PasswordHash {
	hash, err := hasher.HashPassword(user.RawPassword(raw))
	if err != nil {
		panic(err)
	}
	return hash
}

func assertPasswordValid(t *testing.T, suite *suite, password string) {
	t.Helper()

	u, err := suite.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)

	isValid := suite.hasher.ValidatePassword(user.RawPassword(password), u.PasswordHash)
	require.True(t, isValid)
}
