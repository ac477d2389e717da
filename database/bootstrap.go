package database

import (
	"context"
	"fmt"

	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/util/crypto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default administrator. Operators are expected to rotate the password after
// the first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@healthai.com"
)

// EnsureAdminExists creates the default administrator when no identity with the
// admin login exists. An existing admin is never modified.
func EnsureAdminExists(ctx context.Context, conn *gorm.DB) error {
	email := DefaultAdminEmail
	created, err := insertAdmin(ctx, conn, &email)
	if err != nil {
		return err
	}
	if created {
		logger.Warningf("created default user %q, change its password", DefaultAdminUsername)
		return nil
	}

	exists, err := adminExists(ctx, conn)
	if err != nil || exists {
		return err
	}

	// The insert was skipped because somebody already registered the default
	// email; the admin login itself is still free.
	created, err = insertAdmin(ctx, conn, nil)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("unable to create default user %q", DefaultAdminUsername)
	}
	logger.Warningf("created default user %q without email, change its password", DefaultAdminUsername)
	return nil
}

func insertAdmin(ctx context.Context, conn *gorm.DB, email *string) (bool, error) {
	admin := &model.User{
		Username: DefaultAdminUsername,
		Password: crypto.HashPassword(DefaultAdminPassword),
		Email:    email,
		Role:     model.RoleAdmin,
	}
	res := conn.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(admin)
	if res.Error != nil {
		return false, TranslateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func adminExists(ctx context.Context, conn *gorm.DB) (bool, error) {
	var count int64
	err := conn.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", DefaultAdminUsername).
		Count(&count).
		Error
	return count > 0, err
}
