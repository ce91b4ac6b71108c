// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account. Rows are soft deleted so a signup with the
// same username or email can reactivate the account later.
type User struct {
	ID       PublicID `gorm:"primaryKey" json:"id"`
	Username string   `gorm:"uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Password string   `gorm:"not null" json:"-"`
	Bio      string   `json:"bio"`
	Avatar   string   `json:"avatar"`
	Cover    string   `json:"cover"`

	// Email verification state. The code is a 6-digit OTP valid until
	// CodeExpiresAt; both are cleared once the account is verified.
	IsVerified       bool       `gorm:"default:false" json:"is_verified"`
	VerificationCode string     `json:"-"`
	CodeExpiresAt    *time.Time `json:"-"`

	Roles []Role `gorm:"many2many:user_roles" json:"-"`

	// FollowersCount and FollowingCount are computed at query time.
	FollowersCount int `gorm:"-" json:"followers_count"`
	FollowingCount int `gorm:"-" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsDeleted reports whether the account has been soft deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt.Valid
}

// CodeExpired reports whether the current verification code is past its
// window. A user without a code counts as expired.
func (u *User) CodeExpired(now time.Time) bool {
	return u.CodeExpiresAt == nil || now.After(*u.CodeExpiresAt)
}
