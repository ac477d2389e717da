package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateIdentity is returned when a login or email is already taken.
	ErrDuplicateIdentity = errors.New("identity already exists")
	// ErrForeignKeyViolation is returned when a record references a missing identity.
	ErrForeignKeyViolation = errors.New("referenced identity does not exist")
)

// TranslateError maps constraint failures onto the package sentinels and
// returns any other error unchanged.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateIdentity
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyViolation
	}

	// Driver errors that bypass gorm's translator, e.g. from raw Exec.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicateIdentity
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKeyViolation
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
