package service

import (
	"context"
	"errors"
	"time"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
)

var (
	ErrProtectedIdentity = errors.New("administrator accounts cannot be deleted")
	ErrSelfDelete        = errors.New("cannot delete the signed-in account")
)

// UserAdminService backs the administrative screens.
type UserAdminService struct {
	users *UserService
}

func NewUserAdminService(users *UserService) *UserAdminService {
	return &UserAdminService{users: users}
}

// UserDTO is an identity as shown to administrators, without the digest.
type UserDTO struct {
	Id        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toDTO(u *model.User) UserDTO {
	dto := UserDTO{Id: u.Id, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
	if u.Email != nil {
		dto.Email = *u.Email
	}
	return dto
}

// ListUsers lists identities newest first; administrators are left out unless includeAdmins is set.
func (s *UserAdminService) ListUsers(ctx context.Context, includeAdmins bool) ([]UserDTO, error) {
	exclude := model.RoleAdmin
	if includeAdmins {
		exclude = ""
	}
	users, err := s.users.List(ctx, exclude)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toDTO(&users[i]))
	}
	return out, nil
}

// DeleteUser removes identity id and its prediction history on behalf of actorId.
// Administrators and the acting account are refused.
func (s *UserAdminService) DeleteUser(ctx context.Context, actorId, id int) error {
	if actorId == id {
		return ErrSelfDelete
	}
	u, err := s.users.FindById(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	if u.IsAdmin() {
		return ErrProtectedIdentity
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.Infof("user %d deleted %q (id %d)", actorId, u.Username, id)
	return nil
}
