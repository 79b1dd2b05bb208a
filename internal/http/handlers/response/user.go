package response

import (
	"postboard/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.Username = string(du.Username)
	u.CreatedAt = du.CreatedAt
}

// UserWithToken is returned by the endpoints that start a session.
type UserWithToken struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func NewUserWithToken(du user.User, token user.SessionToken) UserWithToken {
	res := UserWithToken{Token: string(token)}
	res.User.FromDomainUser(du)
	return res
}
