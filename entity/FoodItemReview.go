package entity

import (
	"time"

	"github.com/google/uuid"
)

// FoodItemReview is unique per (food item, user).
type FoodItemReview struct {
	UUIDModel
	FoodItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_item_user" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_item_user" json:"-"`
	User       User      `json:"user"`

	Rating         int        `gorm:"not null" json:"rating"`
	Title          string     `gorm:"size:200" json:"title"`
	Comment        string     `gorm:"type:text" json:"comment"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WouldRecommend *bool      `json:"would_recommend"`
	ValueForMoney  *int       `json:"value_for_money"`

	IsActive   bool `gorm:"not null;default:true;index" json:"-"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`
}
