package repository

import (
	"github.com/SrwR16/RecipeHub/entity"
	"gorm.io/gorm"
)

type SearchHistoryRepository struct {
	DB *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{DB: db}
}

// Append records one search; rows are never updated.
func (r *SearchHistoryRepository) Append(h *entity.SearchHistory) error {
	return r.DB.Create(h).Error
}

// GET /search-history/ → newest first
func (r *SearchHistoryRepository) ListForUser(userID uint, offset, limit int) ([]entity.SearchHistory, int64, error) {
	q := r.DB.Model(&entity.SearchHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []entity.SearchHistory
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
