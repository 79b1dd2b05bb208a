package uow

import (
	"context"
	c "postboard/internal/core/domain/common"
	"postboard/internal/core/domain/user"
	"postboard/internal/db"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const EMAIL = c.Email("test@test.test")

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.T(), suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestUserLockSerializesUpdates() {
	userID := s.createUser()

	var wg sync.WaitGroup
	wg.Add(10)
	count := 0

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			ctx := context.Background()
			uow, err := s.uow.Begin(ctx)
			if err != nil {
				s.Fail("could not begin unit of work")
				return
			}
			defer uow.Rollback(ctx)

			_, err = uow.Users().GetByEmailForUpdate(ctx, EMAIL)
			if err != nil {
				s.Fail("could not lock user", "%v", err)
				return
			}
			current := count
			time.Sleep(time.Millisecond)
			count = current + 1

			err = uow.Users().SetPasswordReset(ctx, userID, c.None[user.PasswordResetState]())
			if err != nil {
				s.Fail("could not update user", "%v", err)
				return
			}
			uow.Commit(ctx)
		}()
	}

	wg.Wait()
	s.Equal(10, count)
}

func (s *testSuite) TestRollbackDiscardsChanges() {
	userID := s.createUser()
	ctx := context.Background()

	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	err = uow.Users().SetPassword(ctx, userID, "new-hash", time.Now().UTC())
	s.Require().Nil(err)
	s.Require().Nil(uow.Rollback(ctx))

	uow, err = s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)
	u, err := uow.Users().GetByID(ctx, userID)
	s.Require().Nil(err)
	s.Equal(user.PasswordHash("test"), u.PasswordHash)
	s.False(u.PasswordChangedAt.IsPresent)
}

func (s *testSuite) createUser() user.ID {
	s.T().Helper()

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		Username:     "test",
		PasswordHash: user.PasswordHash("test"),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.FailNowf("could not create user", "%v", err)
	}

	uow.Commit(ctx)
	return createdUser.ID
}
