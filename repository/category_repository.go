package repository

import (
	"github.com/SrwR16/RecipeHub/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryWithCount is a category plus the number of its active items.
type CategoryWithCount struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Icon           string    `json:"icon"`
	Color          string    `json:"color"`
	FoodItemsCount int64     `json:"food_items_count"`
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GET /categories/ → ordered by name
func (r *CategoryRepository) ListWithCounts() ([]CategoryWithCount, error) {
	var out []CategoryWithCount
	err := r.DB.Model(&entity.FoodCategory{}).
		Select("food_categories.id, food_categories.name, food_categories.description, food_categories.icon, food_categories.color, COUNT(food_items.id) AS food_items_count").
		Joins("LEFT JOIN food_items ON food_items.category_id = food_categories.id AND food_items.is_active = ?", true).
		Group("food_categories.id").
		Order("food_categories.name ASC").
		Scan(&out).Error
	return out, err
}

func (r *CategoryRepository) FindByID(id uuid.UUID) (*entity.FoodCategory, error) {
	var cat entity.FoodCategory
	if err := r.DB.First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}
