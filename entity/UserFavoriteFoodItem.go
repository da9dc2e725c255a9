package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFavoriteFoodItem is unique per (user, food item).
type UserFavoriteFoodItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_favorite_user_item" json:"-"`
	FoodItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_item" json:"-"`
	FoodItem   FoodItem  `gorm:"constraint:OnDelete:CASCADE" json:"food_item"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *UserFavoriteFoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
