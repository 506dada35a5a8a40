package model

import "time"

// Tag is a user-scoped label attachable to recipes. The composite unique
// index makes (user, name) the dedup key the resolver relies on.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_tags_user_name"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_tags_user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
