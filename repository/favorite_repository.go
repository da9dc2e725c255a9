package repository

import (
	"github.com/SrwR16/RecipeHub/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// Toggle deletes the (user, item) favorite if it exists and creates it otherwise.
// It reports whether the item is a favorite afterwards.
func (r *FavoriteRepository) Toggle(userID uint, itemID uuid.UUID) (bool, error) {
	res := r.DB.Where("user_id = ? AND food_item_id = ?", userID, itemID).
		Delete(&entity.UserFavoriteFoodItem{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	// a concurrent toggle may have created it already; the unique index wins
	fav := entity.UserFavoriteFoodItem{UserID: userID, FoodItemID: itemID}
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}

// FavoriteIDs returns which of ids the user has favorited.
func (r *FavoriteRepository) FavoriteIDs(userID uint, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	if userID == 0 || len(ids) == 0 {
		return out, nil
	}
	var favIDs []uuid.UUID
	err := r.DB.Model(&entity.UserFavoriteFoodItem{}).
		Where("user_id = ? AND food_item_id IN ?", userID, ids).
		Pluck("food_item_id", &favIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range favIDs {
		out[id] = true
	}
	return out, nil
}

// GET /favorites/ → newest first, active items only
func (r *FavoriteRepository) ListForUser(userID uint, offset, limit int) ([]entity.UserFavoriteFoodItem, int64, error) {
	scope := func() *gorm.DB {
		return r.DB.Model(&entity.UserFavoriteFoodItem{}).
			Joins("JOIN food_items ON food_items.id = user_favorite_food_items.food_item_id AND food_items.is_active = ?", true).
			Where("user_favorite_food_items.user_id = ?", userID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var favs []entity.UserFavoriteFoodItem
	err := scope().
		Preload("FoodItem.Category").
		Preload("FoodItem.CreatedBy").
		Preload("FoodItem").
		Order("user_favorite_food_items.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&favs).Error
	return favs, total, err
}
