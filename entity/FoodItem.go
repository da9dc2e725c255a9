package entity

import (
	"time"

	"github.com/google/uuid"
)

type FoodItem struct {
	UUIDModel
	Name        string   `gorm:"size:200;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	FoodType    FoodType `gorm:"size:20;not null;default:homemade;index" json:"food_type"`

	CategoryID uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	Category   FoodCategory `json:"category"`

	// Pricing
	Price               float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency            string  `gorm:"size:3;not null;default:USD" json:"currency"`
	QuantityDescription string  `gorm:"size:100" json:"quantity_description"`

	// Location; coordinates are fixed-precision columns, validated by the service
	RestaurantName string  `gorm:"size:200" json:"restaurant_name"`
	Address        string  `gorm:"type:text" json:"address"`
	Latitude       float64 `gorm:"type:decimal(10,8);not null;index:idx_food_items_lat_lng" json:"latitude"`
	Longitude      float64 `gorm:"type:decimal(11,8);not null;index:idx_food_items_lat_lng" json:"longitude"`
	City           string  `gorm:"size:100;index" json:"city"`
	Country        string  `gorm:"size:100" json:"country"`

	Ingredients        string `gorm:"type:text" json:"ingredients"`
	PreparationTime    string `gorm:"size:50" json:"preparation_time"`
	ServingSize        string `gorm:"size:50" json:"serving_size"`
	ContactPhone       string `gorm:"size:20" json:"contact_phone"`
	ContactEmail       string `gorm:"size:254" json:"contact_email"`
	PickupInstructions string `gorm:"type:text" json:"pickup_instructions"`

	// Dietary
	IsVegetarian bool `json:"is_vegetarian"`
	IsVegan      bool `json:"is_vegan"`
	IsGlutenFree bool `json:"is_gluten_free"`
	IsHalal      bool `json:"is_halal"`
	ContainsNuts bool `json:"contains_nuts"`

	AvailabilityStatus AvailabilityStatus `gorm:"size:20;not null;default:available;index" json:"availability_status"`
	AvailableFrom      *time.Time         `json:"available_from"`
	AvailableUntil     *time.Time         `json:"available_until"`

	// soft delete flips IsActive
	IsActive   bool `gorm:"not null;default:true;index" json:"is_active"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	CreatedByID uint `gorm:"not null;index" json:"-"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by"`

	Images  []FoodItemImage  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews []FoodItemReview `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
