package service

import (
	"context"
	"fmt"

	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/database/model"

	"gorm.io/gorm"
)

// UserService is the credential store: it persists identities and enforces
// login and email uniqueness through the database constraints.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Insert stores user and fills in its id and creation time. It returns
// database.ErrDuplicateIdentity when the login or email is taken.
func (s *UserService) Insert(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return database.TranslateError(err)
	}
	return nil
}

// FindByLogin returns the identity with the given login, or nil when there is none.
func (s *UserService) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("username = ?", login).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find user %q: %w", login, err)
	}
	return user, nil
}

// FindById returns the identity with the given id, or nil when there is none.
func (s *UserService) FindById(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).First(user, id).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

// Delete removes the identity and its predictions in one transaction.
// Deleting a missing identity is not an error.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Prediction{}).Error; err != nil {
			return fmt.Errorf("delete predictions of user %d: %w", id, err)
		}
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
}

// List returns identities newest first. A non-empty excludeRole filters that role out.
func (s *UserService) List(ctx context.Context, excludeRole model.Role) ([]model.User, error) {
	q := s.db.WithContext(ctx).Model(model.User{})
	if excludeRole != "" {
		q = q.Where("role <> ?", excludeRole)
	}

	var users []model.User
	if err := q.Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model.User{}).Count(&count).Error
	return count, err
}
