package repository

import (
	"github.com/SrwR16/RecipeHub/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// GET /food-items/:id/reviews/ → active reviews, newest first
func (r *ReviewRepository) ListForItem(itemID uuid.UUID, offset, limit int) ([]entity.FoodItemReview, int64, error) {
	q := r.DB.Model(&entity.FoodItemReview{}).Where("food_item_id = ? AND is_active = ?", itemID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []entity.FoodItemReview
	err := q.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

// FindByUser returns the caller's own review of the item, if any.
func (r *ReviewRepository) FindByUser(itemID uuid.UUID, userID uint) (*entity.FoodItemReview, error) {
	var rev entity.FoodItemReview
	err := r.DB.Preload("User").
		Where("food_item_id = ? AND user_id = ?", itemID, userID).
		First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ExistsForUser(itemID uuid.UUID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.FoodItemReview{}).
		Where("food_item_id = ? AND user_id = ?", itemID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Create(rev *entity.FoodItemReview) error {
	if err := r.DB.Create(rev).Error; err != nil {
		return err
	}
	return r.DB.Preload("User").First(rev, "id = ?", rev.ID).Error
}
