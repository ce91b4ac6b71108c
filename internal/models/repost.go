package models

import (
	"time"
)

// Repost represents a user resharing another user's post.
// Unique per (post, user); self-repost is rejected at the service layer.
type Repost struct {
	ID        PublicID  `gorm:"primaryKey" json:"id"`
	UserID    PublicID  `gorm:"not null;uniqueIndex:idx_repost_user_post" json:"user_id"`
	PostID    PublicID  `gorm:"not null;uniqueIndex:idx_repost_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
