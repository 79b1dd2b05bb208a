package verifypasswordresetcode

import (
	"context"
	c "postboard/internal/core/domain/common"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL   = c.Email("test@test.test")
	USER_ID = user.ID(1)
	CODE    = user.PasswordResetCode("123456")
)

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	CodeDigester   *user.FakePasswordResetCodeDigester
	Now            time.Time
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.CodeDigester = user.NewFakePasswordResetCodeDigester()
	suite.UserRepository = user.NewFakeUserRepository()
	u := user.User{ID: USER_ID, Email: EMAIL, Username: "test", PasswordHash: "hash", CreatedAt: NOW}
	u.PasswordReset = user.NewPasswordResetState(u, CODE, suite.CodeDigester, NOW.Add(time.Hour))
	suite.UserRepository.Users = []user.User{u}
	suite.Now = NOW
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.CodeDigester,
		func() time.Time { return suite.Now },
	)
}

func TestVerifyPasswordResetCodeService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestValidCode() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Code: CODE})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(0, suite.UserRepository.PasswordResetWrites)
}

func (suite *testSuite) TestVerificationDoesNotConsumeCode() {
	for i := 0; i < 3; i++ {
		_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Code: CODE})
		suite.Require().Nil(err)
	}
}

func (suite *testSuite) TestInvalidCases() {
	cases := []struct {
		id    string
		email c.Email
		code  user.PasswordResetCode
		now   time.Time
	}{
		{id: "wrong code", email: EMAIL, code: "654321", now: NOW},
		{id: "expired code", email: EMAIL, code: CODE, now: NOW.Add(time.Hour)},
		{id: "unknown email", email: "unknown@test.test", code: CODE, now: NOW},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			suite.Now = testcase.now
			_, err := suite.Service.Run(context.Background(), Input{Email: testcase.email, Code: testcase.code})

			suite.Require().ErrorIs(err, user.ErrInvalidPasswordResetCode)
			suite.Require().Equal(0, suite.UserRepository.PasswordResetWrites)
		})
	}
}

func (suite *testSuite) TestNoPendingCode() {
	suite.UserRepository.Users[0].PasswordReset = c.None[user.PasswordResetState]()

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Code: CODE})

	suite.Require().ErrorIs(err, user.ErrInvalidPasswordResetCode)
}

func (suite *testSuite) TestRepositoryFailure() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Code: CODE})

	assert := suite.Require()
	assert.NotNil(err)
	assert.NotErrorIs(err, user.ErrInvalidPasswordResetCode)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
