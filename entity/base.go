package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel replaces gorm.Model for food map tables, which are keyed by UUID.
type UUIDModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
