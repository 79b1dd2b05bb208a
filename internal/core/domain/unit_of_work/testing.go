package uow

import (
	"context"
	"errors"
	"postboard/internal/core/domain/user"
	"sync"
)

type FakeUnitOfWorkContext struct {
	UserRepository    *user.FakeUserRepository
	WasRollbackCalled bool
	WasCommitCalled   bool
	unlock            func()
	lock              sync.Mutex
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.WasRollbackCalled = true
	c.release()
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.WasCommitCalled = true
	c.release()
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) release() {
	if c.unlock != nil {
		c.unlock()
		c.unlock = nil
	}
}

// FakeUnitOfWork serializes units of work with a single mutex, which stands in
// for the row locks taken by the database implementation.
type FakeUnitOfWork struct {
	UserRepository *user.FakeUserRepository
	Context        *FakeUnitOfWorkContext
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		UserRepository: userRepository,
		Context:        &FakeUnitOfWorkContext{UserRepository: userRepository},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, errors.New("could not begin unit of work")
	}
	u.lock.Lock()
	u.Context = &FakeUnitOfWorkContext{
		UserRepository: u.UserRepository,
		unlock:         u.lock.Unlock,
	}
	return u.Context, nil
}
