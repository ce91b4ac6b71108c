package models

import (
	"time"
)

// Hashtag is a normalized tag extracted from post content. Posts link to
// hashtags through the post_hashtags join table.
type Hashtag struct {
	ID        PublicID  `gorm:"primaryKey" json:"id"`
	Tag       string    `gorm:"uniqueIndex;not null" json:"tag"`
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `gorm:"many2many:post_hashtags" json:"-"`
}
