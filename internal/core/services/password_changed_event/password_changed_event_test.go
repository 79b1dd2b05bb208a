package passwordchangedevent

import (
	"context"
	"errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

var NOW = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

var errTest = errors.New("test error")

type input struct{}

type result struct {
	userID user.ID
}

func (r result) GetUserID() user.ID {
	return r.userID
}

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input input) (result, error) {
	return result{userID: USER_ID}, s.err
}

type testSuite struct {
	suite.Suite
	Logger    *logging.FakeLogger
	Publisher *user.FakeEventPublisher
	Inner     *stubService
	Service   services.Service[input, result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Publisher = user.NewFakeEventPublisher()
	suite.Inner = &stubService{}
	suite.Service = WithPasswordChangedEvent[input, result](
		suite.Logger,
		suite.Publisher,
		func() time.Time { return NOW },
		suite.Inner,
	)
}

func TestPasswordChangedEventService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestEventPublished() {
	res, err := suite.Service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, res.GetUserID())
	assert.Equal([]user.Event{user.NewPasswordChangedEvent(USER_ID, NOW)}, suite.Publisher.Published)
}

func (suite *testSuite) TestNothingPublishedOnError() {
	suite.Inner.err = errTest

	_, err := suite.Service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.ErrorIs(err, errTest)
	assert.Empty(suite.Publisher.Published)
}

func (suite *testSuite) TestPublishingFailureIsNotReturned() {
	suite.Publisher.ReturnError = true

	_, err := suite.Service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
