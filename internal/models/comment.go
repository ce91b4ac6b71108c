// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post in the Pulse application.
type Comment struct {
	ID      PublicID `gorm:"primaryKey" json:"id"`
	Content string   `gorm:"type:text;not null" json:"content"`
	UserID  PublicID `gorm:"not null;index" json:"user_id"`
	PostID  PublicID `gorm:"not null;index" json:"post_id"`
	User    User     `gorm:"foreignKey:UserID" json:"user"`
	Post    Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked bool `gorm:"->" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
