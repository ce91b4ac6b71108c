package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        PublicID  `gorm:"primaryKey" json:"id"`
	UserID    PublicID  `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    PublicID  `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// CommentLike represents a user's like on a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        PublicID  `gorm:"primaryKey" json:"id"`
	UserID    PublicID  `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID PublicID  `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}
