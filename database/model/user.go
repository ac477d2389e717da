package model

import "time"

// Role is the authorization level of an identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a stored identity. Password holds the digest, never the plaintext.
// Email is nil when the identity was registered without one.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	Role      Role      `json:"role" gorm:"not null;default:user"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
