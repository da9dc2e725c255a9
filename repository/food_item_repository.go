package repository

import (
	"strings"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItemFilter holds the optional attribute filters shared by listing and search.
// Nil pointers and empty strings mean "no filter".
type FoodItemFilter struct {
	Category           string // category name substring, case-insensitive
	FoodType           string
	City               string
	Search             string // name, description, ingredients, restaurant_name
	Query              string // Search plus address
	AvailabilityStatus string
	IsVegetarian       *bool
	IsVegan            *bool
	IsGlutenFree       *bool
	IsHalal            *bool
	MinPrice           *float64
	MaxPrice           *float64
}

// DistanceHit is one row of a distance query.
type DistanceHit struct {
	ID       uuid.UUID
	Distance float64 // meters
}

// RatingStats is the aggregate of the active reviews of one item.
type RatingStats struct {
	FoodItemID    uuid.UUID
	AverageRating float64
	ReviewsCount  int64
}

type FoodItemRepository struct {
	DB *gorm.DB
}

func NewFoodItemRepository(db *gorm.DB) *FoodItemRepository {
	return &FoodItemRepository{DB: db}
}

func contains(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// active scope + attribute filters
func (r *FoodItemRepository) filtered(f FoodItemFilter) *gorm.DB {
	q := r.DB.Model(&entity.FoodItem{}).Where("food_items.is_active = ?", true)

	if f.Category != "" {
		q = q.Where("food_items.category_id IN (?)",
			r.DB.Model(&entity.FoodCategory{}).Select("id").Where("LOWER(name) LIKE ?", contains(f.Category)))
	}
	if f.FoodType != "" {
		q = q.Where("food_items.food_type = ?", f.FoodType)
	}
	if f.City != "" {
		q = q.Where("LOWER(food_items.city) LIKE ?", contains(f.City))
	}
	if f.Search != "" {
		p := contains(f.Search)
		q = q.Where("LOWER(food_items.name) LIKE ? OR LOWER(food_items.description) LIKE ? OR LOWER(food_items.ingredients) LIKE ? OR LOWER(food_items.restaurant_name) LIKE ?",
			p, p, p, p)
	}
	if f.Query != "" {
		p := contains(f.Query)
		q = q.Where("LOWER(food_items.name) LIKE ? OR LOWER(food_items.description) LIKE ? OR LOWER(food_items.ingredients) LIKE ? OR LOWER(food_items.restaurant_name) LIKE ? OR LOWER(food_items.address) LIKE ?",
			p, p, p, p, p)
	}
	if f.AvailabilityStatus != "" {
		q = q.Where("food_items.availability_status = ?", f.AvailabilityStatus)
	}
	if f.IsVegetarian != nil {
		q = q.Where("food_items.is_vegetarian = ?", *f.IsVegetarian)
	}
	if f.IsVegan != nil {
		q = q.Where("food_items.is_vegan = ?", *f.IsVegan)
	}
	if f.IsGlutenFree != nil {
		q = q.Where("food_items.is_gluten_free = ?", *f.IsGlutenFree)
	}
	if f.IsHalal != nil {
		q = q.Where("food_items.is_halal = ?", *f.IsHalal)
	}
	if f.MinPrice != nil {
		q = q.Where("food_items.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("food_items.price <= ?", *f.MaxPrice)
	}
	return q
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Category").Preload("CreatedBy")
}

// List returns one page of active items, newest first, and the total match count.
func (r *FoodItemRepository) List(f FoodItemFilter, offset, limit int) ([]entity.FoodItem, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.FoodItem
	err := withRelations(r.filtered(f)).
		Order("food_items.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

// FindActiveByID loads an active item with its category, creator and images.
func (r *FoodItemRepository) FindActiveByID(id uuid.UUID) (*entity.FoodItem, error) {
	var item entity.FoodItem
	err := withRelations(r.DB).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at DESC") }).
		Preload("Images.UploadedBy").
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads active items and returns them in the order of ids.
func (r *FoodItemRepository) FindByIDs(ids []uuid.UUID) ([]entity.FoodItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []entity.FoodItem
	if err := withRelations(r.DB).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.FoodItem, len(rows))
	for _, it := range rows {
		byID[it.ID] = it
	}
	items := make([]entity.FoodItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// WithinRadius returns one page of the ids of matching active items whose
// distance from (lat, lon) is at most radiusM meters, nearest first, and the
// number of matches.
func (r *FoodItemRepository) WithinRadius(lat, lon, radiusM float64, f FoodItemFilter, offset, limit int) ([]DistanceHit, int64, error) {
	expr, args := geo.DistanceSQL("food_items.latitude", "food_items.longitude", lat, lon)

	// the latitude band is exact in degrees; it only narrows the scan
	box := geo.BoundingBoxAround(lat, lon, radiusM/1000)
	inRadius := func() *gorm.DB {
		return r.filtered(f).
			Where("food_items.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where(expr+" <= ?", append(append([]any{}, args...), radiusM)...)
	}

	var total int64
	if err := inRadius().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var hits []DistanceHit
	err := inRadius().
		Select("food_items.id AS id, "+expr+" AS distance", args...).
		Order("distance ASC").
		Offset(offset).
		Limit(limit).
		Scan(&hits).Error
	return hits, total, err
}

// Create inserts a new item and reloads its relations.
func (r *FoodItemRepository) Create(item *entity.FoodItem) error {
	if err := r.DB.Create(item).Error; err != nil {
		return err
	}
	return withRelations(r.DB).First(item, "id = ?", item.ID).Error
}

// Update applies column updates and reloads the item.
func (r *FoodItemRepository) Update(item *entity.FoodItem, updates map[string]any) error {
	if len(updates) > 0 {
		if err := r.DB.Model(item).Updates(updates).Error; err != nil {
			return err
		}
	}
	return withRelations(r.DB).First(item, "id = ?", item.ID).Error
}

// SoftDelete flips is_active; rows are never removed.
func (r *FoodItemRepository) SoftDelete(id uuid.UUID) error {
	return r.DB.Model(&entity.FoodItem{}).Where("id = ?", id).Update("is_active", false).Error
}

// RatingStats aggregates active reviews for the given items in one query.
func (r *FoodItemRepository) RatingStats(ids []uuid.UUID) (map[uuid.UUID]RatingStats, error) {
	out := make(map[uuid.UUID]RatingStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []RatingStats
	err := r.DB.Model(&entity.FoodItemReview{}).
		Select("food_item_id, AVG(rating) AS average_rating, COUNT(*) AS reviews_count").
		Where("food_item_id IN ? AND is_active = ?", ids, true).
		Group("food_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.FoodItemID] = s
	}
	return out, nil
}

// PrimaryImages returns the most recent primary image of each item.
func (r *FoodItemRepository) PrimaryImages(ids []uuid.UUID) (map[uuid.UUID]entity.FoodItemImage, error) {
	out := make(map[uuid.UUID]entity.FoodItemImage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var imgs []entity.FoodItemImage
	err := r.DB.Where("food_item_id IN ? AND is_primary = ?", ids, true).
		Order("uploaded_at ASC").
		Find(&imgs).Error
	if err != nil {
		return nil, err
	}
	for _, img := range imgs {
		out[img.FoodItemID] = img
	}
	return out, nil
}

// AddImage stores a reference to an externally hosted image.
func (r *FoodItemRepository) AddImage(img *entity.FoodItemImage) error {
	if err := r.DB.Create(img).Error; err != nil {
		return err
	}
	return r.DB.Preload("UploadedBy").First(img, "id = ?", img.ID).Error
}

// AllActive loads every active item with its category.
func (r *FoodItemRepository) AllActive() ([]entity.FoodItem, error) {
	var items []entity.FoodItem
	err := r.DB.Preload("Category").Where("is_active = ?", true).Find(&items).Error
	return items, err
}
