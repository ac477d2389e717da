package session

import (
	"context"
	"errors"

	"github.com/healthai/riskpanel/database/model"
)

var (
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrAlreadyAuthenticated = errors.New("session is already authenticated")
)

// Authenticator checks a login and password, returning nil when they do not match.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) *model.User
}

// SessionUser is the part of an identity a session keeps.
type SessionUser struct {
	Id       int
	Username string
	Role     model.Role
}

// Context is the identity state of one interactive session: either anonymous
// or authenticated as exactly one user. The zero value is anonymous.
type Context struct {
	user *SessionUser
}

func Anonymous() Context {
	return Context{}
}

func Authenticated(u *model.User) Context {
	if u == nil {
		return Anonymous()
	}
	return Context{user: &SessionUser{Id: u.Id, Username: u.Username, Role: u.Role}}
}

// User returns the authenticated user, if any.
func (c Context) User() (SessionUser, bool) {
	if c.user == nil {
		return SessionUser{}, false
	}
	return *c.user, true
}

func (c Context) IsAuthenticated() bool {
	return c.user != nil
}

func (c Context) HasRole(roles ...model.Role) bool {
	if c.user == nil {
		return false
	}
	for _, r := range roles {
		if c.user.Role == r {
			return true
		}
	}
	return false
}

// Login moves an anonymous session to authenticated when a accepts the credentials.
// On failure the session stays anonymous and ErrInvalidCredentials is returned.
func (c Context) Login(ctx context.Context, a Authenticator, login, password string) (Context, error) {
	if c.IsAuthenticated() {
		return c, ErrAlreadyAuthenticated
	}
	u := a.Authenticate(ctx, login, password)
	if u == nil {
		return Anonymous(), ErrInvalidCredentials
	}
	return Authenticated(u), nil
}

// Logout always returns an anonymous session.
func (c Context) Logout() Context {
	return Anonymous()
}
