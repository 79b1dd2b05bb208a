package resetpassword

import (
	"context"
	c "postboard/internal/core/domain/common"
	"postboard/internal/core/domain/logging"
	uow "postboard/internal/core/domain/unit_of_work"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("test@test.test")
	USER_ID       = user.ID(1)
	CODE          = user.PasswordResetCode("123456")
	OLD_PASSWORD  = user.RawPassword("old-password")
	NEW_PASSWORD  = user.RawPassword("new-password")
	NEW_PASSWORD2 = user.RawPassword("new-password-2")
)

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	CodeDigester   *user.FakePasswordResetCodeDigester
	PasswordHasher *user.FakePasswordHasher
	Now            time.Time
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.CodeDigester = user.NewFakePasswordResetCodeDigester()
	suite.PasswordHasher = user.NewFakePasswordHasher()

	oldHash, _ := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	u := user.User{ID: USER_ID, Email: EMAIL, Username: "test", PasswordHash: oldHash, CreatedAt: NOW}
	u.PasswordReset = user.NewPasswordResetState(u, CODE, suite.CodeDigester, NOW.Add(time.Hour))
	suite.UnitOfWork.UserRepository.Users = []user.User{u}

	suite.Now = NOW
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.CodeDigester,
		suite.PasswordHasher,
		func() time.Time { return suite.Now },
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	// Exercise ---
	result, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Code: CODE, NewPassword: NEW_PASSWORD},
	)

	// Verify ---
	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, result.User.ID)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	u := suite.getUser()
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
	assert.False(u.PasswordReset.IsPresent)
	assert.Equal(c.Some(NOW), u.PasswordChangedAt)
	assert.Equal(u, result.User)
}

func (suite *testSuite) TestCodeIsSingleUse() {
	// Exercise ---
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Code: CODE, NewPassword: NEW_PASSWORD},
	)
	suite.Require().Nil(err)
	_, err = suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Code: CODE, NewPassword: NEW_PASSWORD2},
	)

	// Verify ---
	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidPasswordResetCode)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, suite.getUser().PasswordHash))
}

func (suite *testSuite) TestInvalidCodeDoesNotMutate() {
	cases := []struct {
		id    string
		email c.Email
		code  user.PasswordResetCode
		now   time.Time
	}{
		{id: "wrong code", email: EMAIL, code: "000000", now: NOW},
		{id: "expired code", email: EMAIL, code: CODE, now: NOW.Add(2 * time.Hour)},
		{id: "unknown email", email: "unknown@test.test", code: CODE, now: NOW},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			// Setup ---
			before := suite.getUser()
			suite.Now = testcase.now

			// Exercise ---
			_, err := suite.Service.Run(
				context.Background(),
				Input{Email: testcase.email, Code: testcase.code, NewPassword: NEW_PASSWORD},
			)

			// Verify ---
			assert := suite.Require()
			assert.ErrorIs(err, user.ErrInvalidPasswordResetCode)
			assert.Equal(before, suite.getUser())
			assert.False(suite.UnitOfWork.Context.WasCommitCalled)
		})
	}
}

func (suite *testSuite) TestShortPasswordRejectedBeforeTouchingState() {
	// Exercise ---
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Code: CODE, NewPassword: "1234567"},
	)

	// Verify ---
	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidPassword)
	assert.Empty(suite.UnitOfWork.UserRepository.LockedForUpdateEmails)
	u := suite.getUser()
	assert.True(u.PasswordReset.IsPresent)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
}

func (suite *testSuite) TestReplacedCodeIsRejected() {
	// Setup ---
	u := suite.getUser()
	suite.UnitOfWork.UserRepository.SetPasswordReset(
		context.Background(),
		USER_ID,
		user.NewPasswordResetState(u, "999999", suite.CodeDigester, NOW.Add(time.Hour)),
	)

	// Exercise ---
	_, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Code: CODE, NewPassword: NEW_PASSWORD},
	)

	// Verify ---
	suite.Require().ErrorIs(err, user.ErrInvalidPasswordResetCode)
}

func (suite *testSuite) getUser() user.User {
	suite.T().Helper()
	u, err := suite.UnitOfWork.UserRepository.GetByID(context.Background(), USER_ID)
	suite.Require().Nil(err)
	return u
}
