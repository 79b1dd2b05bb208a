package user

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	c "postboard/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users                 []User
	ReturnError           bool
	PasswordResetWrites   int
	LockedForUpdateEmails []c.Email
	lock                  sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, errors.New("could not get user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, errors.New("could not get user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmailForUpdate(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	r.LockedForUpdateEmails = append(r.LockedForUpdateEmails, email)
	r.lock.Unlock()
	return r.GetByEmail(ctx, email)
}

func (r *FakeUserRepository) SetPasswordReset(
	ctx context.Context,
	id ID,
	reset c.Optional[PasswordResetState],
) error {
	if r.ReturnError {
		return errors.New("could not set password reset")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordReset = reset
			r.PasswordResetWrites++
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash, at time.Time) error {
	if r.ReturnError {
		return errors.New("could not set password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			r.Users[ix].PasswordChangedAt = c.Some(at)
			r.Users[ix].PasswordReset = c.None[PasswordResetState]()
			return nil
		}
	}
	return ErrUserDoesNotExist
}

// FakePasswordResetCodeGenerator returns Codes in order and repeats the last one.
type FakePasswordResetCodeGenerator struct {
	Codes       []PasswordResetCode
	Generated   int
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetCodeGenerator(codes ...string) *FakePasswordResetCodeGenerator {
	g := &FakePasswordResetCodeGenerator{}
	for _, code := range codes {
		g.Codes = append(g.Codes, PasswordResetCode(code))
	}
	return g
}

func (g *FakePasswordResetCodeGenerator) GeneratePasswordResetCode() (PasswordResetCode, error) {
	if g.ReturnError {
		return "", errors.New("could not generate password reset code")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := g.Generated
	if ix >= len(g.Codes) {
		ix = len(g.Codes) - 1
	}
	g.Generated++
	return g.Codes[ix], nil
}

type FakePasswordResetCodeDigester struct{}

func NewFakePasswordResetCodeDigester() *FakePasswordResetCodeDigester {
	return &FakePasswordResetCodeDigester{}
}

func (d *FakePasswordResetCodeDigester) Digest(userID ID, code PasswordResetCode) PasswordResetCodeDigest {
	return PasswordResetCodeDigest(fmt.Sprintf("%d:%s", userID, string(code)))
}

func (d *FakePasswordResetCodeDigester) Matches(
	userID ID,
	code PasswordResetCode,
	digest PasswordResetCodeDigest,
) bool {
	return d.Digest(userID, code) == digest
}

type FakePasswordResetCodeSender struct {
	Sent        []PasswordResetCode
	SentTo      []User
	ReturnError bool
	// Delay blocks every send until it elapses or the context is done.
	Delay time.Duration
	lock  sync.Mutex
}

func NewFakePasswordResetCodeSender() *FakePasswordResetCodeSender {
	return &FakePasswordResetCodeSender{}
}

func (s *FakePasswordResetCodeSender) SendPasswordResetCode(
	ctx context.Context,
	u User,
	code PasswordResetCode,
) error {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.ReturnError {
		return fmt.Errorf("could not send password reset code")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, code)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakePasswordResetCodeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetCodeSender) LastSent() PasswordResetCode {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeSessionIssuer struct {
	Claims      map[SessionToken]SessionClaims
	Now         func() time.Time
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeSessionIssuer(now func() time.Time) *FakeSessionIssuer {
	return &FakeSessionIssuer{Claims: make(map[SessionToken]SessionClaims), Now: now}
}

func (i *FakeSessionIssuer) IssueToken(u User) (SessionToken, error) {
	if i.ReturnError {
		return "", errors.New("could not issue session token")
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	token := SessionToken(fmt.Sprintf("session-%d-%d", u.ID, len(i.Claims)))
	i.Claims[token] = SessionClaims{UserID: u.ID, IssuedAt: i.Now().Truncate(time.Second)}
	return token, nil
}

func (i *FakeSessionIssuer) ParseToken(token SessionToken) (SessionClaims, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	claims, ok := i.Claims[token]
	if !ok {
		return claims, ErrInvalidSessionToken
	}
	return claims, nil
}

type FakeEventPublisher struct {
	Published   []Event
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) Publish(ctx context.Context, event Event) error {
	if p.ReturnError {
		return errors.New("could not publish event")
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

type FakePasswordChangedNoticeSender struct {
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedNoticeSender() *FakePasswordChangedNoticeSender {
	return &FakePasswordChangedNoticeSender{}
}

func (s *FakePasswordChangedNoticeSender) SendPasswordChangedNotice(ctx context.Context, u User, at time.Time) error {
	if s.ReturnError {
		return errors.New("could not send password changed notice")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, u)
	return nil
}
