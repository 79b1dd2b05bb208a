package user

import (
	"context"
	"database/sql"
	"errors"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const (
	PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
	EMAIL_CONSTRAINT_NAME         = "user_email_idx"
	USERNAME_CONSTRAINT_NAME      = "user_username_idx"
)

const userColumns = `
	id, email, username, password_hash, created_at, password_changed_at,
	reset_code_digest, reset_code_expires_at
`

// DBTX is satisfied by both a connection pool and a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		string(c.NewEmail(string(input.Email))),
		string(input.Username),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch pgErr.ConstraintName {
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return r.decodeRow(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(c.NewEmail(string(email))),
	)
	return r.decodeRow(row)
}

func (r *PgxUserRepository) GetByEmailForUpdate(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1 FOR UPDATE`,
		string(c.NewEmail(string(email))),
	)
	return r.decodeRow(row)
}

func (r *PgxUserRepository) SetPasswordReset(
	ctx context.Context,
	id user.ID,
	reset c.Optional[user.PasswordResetState],
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_code_digest = $2, reset_code_expires_at = $3 WHERE id = $1`,
		int64(id),
		sql.NullString{String: string(reset.Value.CodeDigest), Valid: reset.IsPresent},
		sql.NullTime{Time: reset.Value.ExpiresAt, Valid: reset.IsPresent},
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetPassword(
	ctx context.Context,
	id user.ID,
	password user.PasswordHash,
	at time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		SET password_hash = $2, password_changed_at = $3,
			reset_code_digest = NULL, reset_code_expires_at = NULL
		WHERE id = $1`,
		int64(id),
		string(password),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) decodeRow(row pgx.Row) (u user.User, err error) {
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                 int64
		email              string
		username           string
		passwordHash       string
		createdAt          time.Time
		passwordChangedAt  sql.NullTime
		resetCodeDigest    sql.NullString
		resetCodeExpiresAt sql.NullTime
	)
	err = row.Scan(
		&id,
		&email,
		&username,
		&passwordHash,
		&createdAt,
		&passwordChangedAt,
		&resetCodeDigest,
		&resetCodeExpiresAt,
	)
	if err != nil {
		return u, err
	}

	u = user.User{
		ID:                user.ID(id),
		Email:             c.Email(email),
		Username:          user.Username(username),
		PasswordHash:      user.PasswordHash(passwordHash),
		CreatedAt:         createdAt.UTC(),
		PasswordChangedAt: c.NewOptional(passwordChangedAt.Time.UTC(), passwordChangedAt.Valid),
	}
	if resetCodeDigest.Valid && resetCodeExpiresAt.Valid {
		u.PasswordReset = c.Some(user.PasswordResetState{
			CodeDigest: user.PasswordResetCodeDigest(resetCodeDigest.String),
			ExpiresAt:  resetCodeExpiresAt.Time.UTC(),
		})
	}
	return u, nil
}
