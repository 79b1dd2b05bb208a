package email

import (
	"context"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"sync"
	"time"
)

// TestModeSender delivers nothing. It keeps the last password reset code per
// email so that end-to-end tests can read it back.
type TestModeSender struct {
	log   logging.Logger
	codes map[c.Email]user.PasswordResetCode
	lock  sync.Mutex
}

func NewTestModeSender(log logging.Logger) *TestModeSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &TestModeSender{log: log, codes: make(map[c.Email]user.PasswordResetCode)}
}

func (s *TestModeSender) SendPasswordResetCode(ctx context.Context, u user.User, code user.PasswordResetCode) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.codes[u.Email] = code
	s.log.Info(ctx, "Test mode, password reset code is not sent.", logging.Entry("userId", u.ID))
	return nil
}

func (s *TestModeSender) SendPasswordChangedNotice(ctx context.Context, u user.User, at time.Time) error {
	s.log.Info(
		ctx,
		"Test mode, password changed notice is not sent.",
		logging.Entry("userId", u.ID),
		logging.Entry("at", FormatPasswordChangedAt(at)),
	)
	return nil
}

func (s *TestModeSender) LastPasswordResetCode(email c.Email) (user.PasswordResetCode, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	code, ok := s.codes[email]
	return code, ok
}
