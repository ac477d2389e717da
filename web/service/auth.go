package service

import (
	"context"
	"errors"
	"strings"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/util/crypto"
)

var ErrInvalidLogin = errors.New("login must not be empty")

// AuthService registers identities and checks credentials against the credential store.
type AuthService struct {
	users *UserService
}

func NewAuthService(users *UserService) *AuthService {
	return &AuthService{users: users}
}

// Register creates an identity with role user. Uniqueness is decided by the
// store at insert time, so concurrent registrations of one login cannot both
// succeed; the loser gets database.ErrDuplicateIdentity.
// The login is trimmed; one that is blank after trimming is refused.
// Password strength is not checked here.
func (s *AuthService) Register(ctx context.Context, login, password, email string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrInvalidLogin
	}

	u := &model.User{
		Username: login,
		Password: crypto.HashPassword(password),
		Email:    normalizeEmail(email),
		Role:     model.RoleUser,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the identity when login and password match, nil otherwise.
// An unknown login and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) *model.User {
	user, err := s.users.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		logger.Warning("check user err: ", err)
		return nil
	}
	if user == nil {
		return nil
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

func normalizeEmail(email string) *string {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return nil
	}
	return &e
}
