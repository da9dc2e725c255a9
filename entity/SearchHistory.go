package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchHistory is append-only.
type SearchHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uint     `gorm:"index:idx_search_history_user_created" json:"-"`
	Query        string    `gorm:"size:500;not null;index" json:"query"`
	Location     string    `gorm:"size:200" json:"location"`
	Latitude     *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude    *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	ResultsCount int       `gorm:"not null;default:0" json:"results_count"`
	CreatedAt    time.Time `gorm:"index:idx_search_history_user_created" json:"created_at"`
}

func (h *SearchHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
