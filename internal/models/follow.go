// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow represents a follower -> following relationship between two users.
// The pair must be unique; self-follow is rejected at the service layer.
type Follow struct {
	ID          PublicID  `gorm:"primaryKey" json:"id"`
	FollowerID  PublicID  `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID PublicID  `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}
