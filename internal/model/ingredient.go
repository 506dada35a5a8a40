package model

import "time"

// Ingredient is structurally identical to Tag but semantically independent:
// the same name can exist as both a tag and an ingredient for one user.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
