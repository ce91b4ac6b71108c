// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Pulse application.
type Post struct {
	ID       PublicID `gorm:"primaryKey" json:"id"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	UserID   PublicID `gorm:"not null;index" json:"user_id"`
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	IsPublic bool     `gorm:"default:true" json:"is_public"`

	Hashtags []Hashtag `gorm:"many2many:post_hashtags" json:"hashtags,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// RepostsCount is not persisted; computed at query time
	RepostsCount int `gorm:"->" json:"reposts_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Reposted indicates whether the current requesting user reposted this post (computed)
	Reposted bool `gorm:"->" json:"reposted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
