package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItemImage points at an image kept by the external media store.
// At most one image per item should be primary; this is not enforced.
type FoodItemImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FoodItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ImageURL   string    `gorm:"size:500;not null" json:"image"`
	Caption    string    `gorm:"size:200" json:"caption"`
	IsPrimary  bool      `json:"is_primary"`

	UploadedByID uint      `gorm:"not null" json:"-"`
	UploadedBy   User      `gorm:"foreignKey:UploadedByID" json:"uploaded_by"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (i *FoodItemImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
