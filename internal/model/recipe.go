package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is owned by exactly one user. Its tags and ingredients always
// belong to the same owner; links are stored in join tables and rows are
// removed with the recipe.
type Recipe struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	Title      string          `json:"title" gorm:"size:255;not null"`
	TimeMinute int             `json:"time_minute" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(5,2);not null"`
	Desc       string          `json:"desc" gorm:"type:text"`
	Link       string          `json:"link" gorm:"size:300"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User        *User        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}
