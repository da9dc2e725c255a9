package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// detail view shows this many recent reviews
	detailReviewsLimit = 10
)

// Viewer is who is looking and from where. It is passed explicitly to
// everything that derives per-caller fields.
type Viewer struct {
	UserID    uint // 0 when anonymous
	Username  string
	Latitude  *float64
	Longitude *float64
}

func (v Viewer) Authenticated() bool { return v.UserID != 0 }

func (v Viewer) hasLocation() bool { return v.Latitude != nil && v.Longitude != nil }

// FoodItemView is a food item with the fields derived for one viewer.
type FoodItemView struct {
	entity.FoodItem
	Distance      *float64 // km from the viewer
	IsFavorite    bool
	AverageRating *float64
	ReviewsCount  int64
	PrimaryImage  *entity.FoodItemImage
}

// FoodItemDetail adds the detail-only relations.
type FoodItemDetail struct {
	FoodItemView
	Reviews    []entity.FoodItemReview
	UserReview *entity.FoodItemReview
}

// FoodItemInput is the writable part of a food item. Nil fields are left
// untouched on update; on create the required ones must be set.
type FoodItemInput struct {
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	FoodType            *string    `json:"food_type"`
	CategoryID          *uuid.UUID `json:"category"`
	Price               *float64   `json:"price"`
	Currency            *string    `json:"currency"`
	QuantityDescription *string    `json:"quantity_description"`
	RestaurantName      *string    `json:"restaurant_name"`
	Address             *string    `json:"address"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	City                *string    `json:"city"`
	Country             *string    `json:"country"`
	Ingredients         *string    `json:"ingredients"`
	PreparationTime     *string    `json:"preparation_time"`
	ServingSize         *string    `json:"serving_size"`
	ContactPhone        *string    `json:"contact_phone"`
	ContactEmail        *string    `json:"contact_email"`
	PickupInstructions  *string    `json:"pickup_instructions"`
	IsVegetarian        *bool      `json:"is_vegetarian"`
	IsVegan             *bool      `json:"is_vegan"`
	IsGlutenFree        *bool      `json:"is_gluten_free"`
	IsHalal             *bool      `json:"is_halal"`
	ContainsNuts        *bool      `json:"contains_nuts"`
	AvailabilityStatus  *string    `json:"availability_status"`
	AvailableFrom       *time.Time `json:"available_from"`
	AvailableUntil      *time.Time `json:"available_until"`
}

// ImageInput registers an image already uploaded to the media store.
type ImageInput struct {
	ImageURL  string `json:"image" binding:"required,url"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
}

type FoodItemService struct {
	Items      *repository.FoodItemRepository
	Categories *repository.CategoryRepository
	Favorites  *repository.FavoriteRepository
	Reviews    *repository.ReviewRepository
	Users      *repository.UserRepository
	Geocoder   Geocoder
	Index      repository.FoodIndex
}

func NewFoodItemService(
	items *repository.FoodItemRepository,
	categories *repository.CategoryRepository,
	favorites *repository.FavoriteRepository,
	reviews *repository.ReviewRepository,
	users *repository.UserRepository,
	geocoder Geocoder,
	index repository.FoodIndex,
) *FoodItemService {
	if index == nil {
		index = repository.NoopIndex{}
	}
	return &FoodItemService{
		Items:      items,
		Categories: categories,
		Favorites:  favorites,
		Reviews:    reviews,
		Users:      users,
		Geocoder:   geocoder,
		Index:      index,
	}
}

// notFound translates gorm's miss into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// NormalizePage clamps page to >= 1 and size to [1, MaxPageSize].
func NormalizePage(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}

// List returns one page of active items, newest first.
func (s *FoodItemService) List(ctx context.Context, f repository.FoodItemFilter, page, pageSize int, v Viewer) ([]FoodItemView, int64, error) {
	if f.FoodType != "" && !entity.FoodType(f.FoodType).Valid() {
		return nil, 0, fmt.Errorf("%w: unknown food_type %q", ErrInvalidArgument, f.FoodType)
	}
	if f.AvailabilityStatus != "" && !entity.AvailabilityStatus(f.AvailabilityStatus).Valid() {
		return nil, 0, fmt.Errorf("%w: unknown availability_status %q", ErrInvalidArgument, f.AvailabilityStatus)
	}
	offset, limit := NormalizePage(page, pageSize)
	items, total, err := s.Items.List(f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.Decorate(items, v)
	return views, total, err
}

// Decorate derives distance, favorite flag, rating and primary image for
// a page of items with one query per derived field.
func (s *FoodItemService) Decorate(items []entity.FoodItem, v Viewer) ([]FoodItemView, error) {
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	stats, err := s.Items.RatingStats(ids)
	if err != nil {
		return nil, err
	}
	images, err := s.Items.PrimaryImages(ids)
	if err != nil {
		return nil, err
	}
	favs, err := s.Favorites.FavoriteIDs(v.UserID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]FoodItemView, len(items))
	for i := range items {
		it := items[i]
		view := FoodItemView{FoodItem: it, IsFavorite: favs[it.ID]}
		if st, ok := stats[it.ID]; ok && st.ReviewsCount > 0 {
			avg := math.Round(st.AverageRating*100) / 100
			view.AverageRating = &avg
			view.ReviewsCount = st.ReviewsCount
		}
		if img, ok := images[it.ID]; ok {
			img := img
			view.PrimaryImage = &img
		}
		if v.hasLocation() {
			d := geo.Haversine(it.Latitude, it.Longitude, *v.Latitude, *v.Longitude)
			view.Distance = &d
		}
		views[i] = view
	}
	return views, nil
}

// Get returns an active item with its images, recent reviews and the
// viewer's own review.
func (s *FoodItemService) Get(ctx context.Context, id uuid.UUID, v Viewer) (*FoodItemDetail, error) {
	item, err := s.Items.FindActiveByID(id)
	if err != nil {
		return nil, notFound(err, "food item")
	}
	views, err := s.Decorate([]entity.FoodItem{*item}, v)
	if err != nil {
		return nil, err
	}
	detail := &FoodItemDetail{FoodItemView: views[0]}

	detail.Reviews, _, err = s.Reviews.ListForItem(id, 0, detailReviewsLimit)
	if err != nil {
		return nil, err
	}
	if v.Authenticated() {
		rev, err := s.Reviews.FindByUser(id, v.UserID)
		switch {
		case err == nil:
			detail.UserReview = rev
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	return detail, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// validate checks the fields that are set. create additionally requires
// the mandatory ones.
func (s *FoodItemService) validate(in *FoodItemInput, create bool) error {
	if create {
		switch {
		case trimmed(in.Name) == "":
			return fmt.Errorf("%w: name is required", ErrInvalidArgument)
		case in.CategoryID == nil:
			return fmt.Errorf("%w: category is required", ErrInvalidArgument)
		case in.Price == nil:
			return fmt.Errorf("%w: price is required", ErrInvalidArgument)
		case in.Latitude == nil || in.Longitude == nil:
			return fmt.Errorf("%w: latitude and longitude are required", ErrInvalidArgument)
		}
	}
	if in.Name != nil && trimmed(in.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	if in.FoodType != nil && !entity.FoodType(*in.FoodType).Valid() {
		return fmt.Errorf("%w: unknown food_type %q", ErrInvalidArgument, *in.FoodType)
	}
	if in.AvailabilityStatus != nil && !entity.AvailabilityStatus(*in.AvailabilityStatus).Valid() {
		return fmt.Errorf("%w: unknown availability_status %q", ErrInvalidArgument, *in.AvailabilityStatus)
	}
	if in.Price != nil && (*in.Price < 0 || math.IsNaN(*in.Price)) {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}
	if in.Currency != nil && len(trimmed(in.Currency)) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidArgument)
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude go together", ErrInvalidArgument)
	}
	if in.Latitude != nil {
		if err := geo.ValidateCoordinates(*in.Latitude, *in.Longitude); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	if in.AvailableFrom != nil && in.AvailableUntil != nil && in.AvailableUntil.Before(*in.AvailableFrom) {
		return fmt.Errorf("%w: available_until is before available_from", ErrInvalidArgument)
	}
	if in.CategoryID != nil {
		if _, err := s.Categories.FindByID(*in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %s does not exist", ErrInvalidArgument, *in.CategoryID)
			}
			return err
		}
	}
	return nil
}

// updates converts the set fields to a column map.
func (in *FoodItemInput) updates() map[string]any {
	m := map[string]any{}
	setStr := func(col string, p *string) {
		if p != nil {
			m[col] = strings.TrimSpace(*p)
		}
	}
	setBool := func(col string, p *bool) {
		if p != nil {
			m[col] = *p
		}
	}
	setStr("name", in.Name)
	setStr("description", in.Description)
	setStr("food_type", in.FoodType)
	setStr("quantity_description", in.QuantityDescription)
	setStr("restaurant_name", in.RestaurantName)
	setStr("address", in.Address)
	setStr("city", in.City)
	setStr("country", in.Country)
	setStr("ingredients", in.Ingredients)
	setStr("preparation_time", in.PreparationTime)
	setStr("serving_size", in.ServingSize)
	setStr("contact_phone", in.ContactPhone)
	setStr("contact_email", in.ContactEmail)
	setStr("pickup_instructions", in.PickupInstructions)
	setStr("availability_status", in.AvailabilityStatus)
	if in.Currency != nil {
		m["currency"] = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	setBool("is_vegetarian", in.IsVegetarian)
	setBool("is_vegan", in.IsVegan)
	setBool("is_gluten_free", in.IsGlutenFree)
	setBool("is_halal", in.IsHalal)
	setBool("contains_nuts", in.ContainsNuts)
	if in.CategoryID != nil {
		m["category_id"] = *in.CategoryID
	}
	if in.Price != nil {
		m["price"] = math.Round(*in.Price*100) / 100
	}
	if in.Latitude != nil {
		m["latitude"] = geo.RoundCoordinate(*in.Latitude)
		m["longitude"] = geo.RoundCoordinate(*in.Longitude)
	}
	if in.AvailableFrom != nil {
		m["available_from"] = *in.AvailableFrom
	}
	if in.AvailableUntil != nil {
		m["available_until"] = *in.AvailableUntil
	}
	return m
}

// Create stores a new item owned by the viewer. Blank address, city and
// country are filled from reverse geocoding when the provider answers.
func (s *FoodItemService) Create(ctx context.Context, v Viewer, in FoodItemInput) (*FoodItemView, error) {
	if !v.Authenticated() {
		return nil, fmt.Errorf("%w: login required", ErrPermissionDenied)
	}
	if err := s.validate(&in, true); err != nil {
		return nil, err
	}
	if err := s.Users.Ensure(v.UserID, v.Username); err != nil {
		return nil, err
	}

	item := entity.FoodItem{
		Name:                trimmed(in.Name),
		Description:         trimmed(in.Description),
		FoodType:            entity.FoodTypeHomemade,
		CategoryID:          *in.CategoryID,
		Price:               math.Round(*in.Price*100) / 100,
		Currency:            "USD",
		QuantityDescription: trimmed(in.QuantityDescription),
		RestaurantName:      trimmed(in.RestaurantName),
		Address:             trimmed(in.Address),
		Latitude:            geo.RoundCoordinate(*in.Latitude),
		Longitude:           geo.RoundCoordinate(*in.Longitude),
		City:                trimmed(in.City),
		Country:             trimmed(in.Country),
		Ingredients:         trimmed(in.Ingredients),
		PreparationTime:     trimmed(in.PreparationTime),
		ServingSize:         trimmed(in.ServingSize),
		ContactPhone:        trimmed(in.ContactPhone),
		ContactEmail:        trimmed(in.ContactEmail),
		PickupInstructions:  trimmed(in.PickupInstructions),
		AvailabilityStatus:  entity.AvailabilityAvailable,
		AvailableFrom:       in.AvailableFrom,
		AvailableUntil:      in.AvailableUntil,
		IsActive:            true,
		CreatedByID:         v.UserID,
	}
	if in.FoodType != nil {
		item.FoodType = entity.FoodType(*in.FoodType)
	}
	if in.Currency != nil {
		item.Currency = strings.ToUpper(trimmed(in.Currency))
	}
	if in.AvailabilityStatus != nil {
		item.AvailabilityStatus = entity.AvailabilityStatus(*in.AvailabilityStatus)
	}
	copyBool(&item.IsVegetarian, in.IsVegetarian)
	copyBool(&item.IsVegan, in.IsVegan)
	copyBool(&item.IsGlutenFree, in.IsGlutenFree)
	copyBool(&item.IsHalal, in.IsHalal)
	copyBool(&item.ContainsNuts, in.ContainsNuts)

	s.fillLocation(ctx, &item)

	if err := s.Items.Create(&item); err != nil {
		return nil, err
	}
	s.mirror(ctx, &item)

	views, err := s.Decorate([]entity.FoodItem{item}, v)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func copyBool(dst, p *bool) {
	if p != nil {
		*dst = *p
	}
}

func (s *FoodItemService) fillLocation(ctx context.Context, item *entity.FoodItem) {
	if item.Address != "" && item.City != "" && item.Country != "" {
		return
	}
	if s.Geocoder == nil {
		return
	}
	loc, err := s.Geocoder.ReverseGeocode(ctx, item.Latitude, item.Longitude)
	if err != nil {
		log.Printf("auto-fill location for %q: %v", item.Name, err)
		return
	}
	if item.City == "" {
		item.City = loc.City
	}
	if item.Country == "" {
		item.Country = loc.Country
	}
	if item.Address == "" {
		item.Address = loc.FormattedAddress
	}
}

// ownedActive loads an active item and checks the viewer created it.
func (s *FoodItemService) ownedActive(id uuid.UUID, v Viewer) (*entity.FoodItem, error) {
	item, err := s.Items.FindActiveByID(id)
	if err != nil {
		return nil, notFound(err, "food item")
	}
	if !v.Authenticated() || item.CreatedByID != v.UserID {
		return nil, fmt.Errorf("%w: only the creator can modify this food item", ErrPermissionDenied)
	}
	return item, nil
}

// Update applies a partial update. Only the creator may update.
func (s *FoodItemService) Update(ctx context.Context, id uuid.UUID, v Viewer, in FoodItemInput) (*FoodItemView, error) {
	item, err := s.ownedActive(id, v)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&in, false); err != nil {
		return nil, err
	}
	if err := s.Items.Update(item, in.updates()); err != nil {
		return nil, err
	}
	s.mirror(ctx, item)

	views, err := s.Decorate([]entity.FoodItem{*item}, v)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete soft-deletes the item. Only the creator may delete.
func (s *FoodItemService) Delete(ctx context.Context, id uuid.UUID, v Viewer) error {
	if _, err := s.ownedActive(id, v); err != nil {
		return err
	}
	if err := s.Items.SoftDelete(id); err != nil {
		return err
	}
	if err := s.Index.Remove(ctx, id); err != nil {
		log.Printf("search index remove %s: %v", id, err)
	}
	return nil
}

// AddImage attaches an image to an item the viewer created.
func (s *FoodItemService) AddImage(ctx context.Context, id uuid.UUID, v Viewer, in ImageInput) (*entity.FoodItemImage, error) {
	if _, err := s.ownedActive(id, v); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidArgument)
	}
	img := entity.FoodItemImage{
		FoodItemID:   id,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Caption:      strings.TrimSpace(in.Caption),
		IsPrimary:    in.IsPrimary,
		UploadedByID: v.UserID,
	}
	if err := s.Items.AddImage(&img); err != nil {
		return nil, err
	}
	return &img, nil
}

// mirror keeps the search index in step; failures only cost freshness.
func (s *FoodItemService) mirror(ctx context.Context, item *entity.FoodItem) {
	if err := s.Index.Index(ctx, item); err != nil {
		log.Printf("search index %s: %v", item.ID, err)
	}
}

// BulkIndexer loads many items at once and reports how many failed.
type BulkIndexer interface {
	Bulk(ctx context.Context, items []entity.FoodItem) (int, error)
}

// Reindex pushes every active item into the search index.
func (s *FoodItemService) Reindex(ctx context.Context, idx BulkIndexer) error {
	items, err := s.Items.AllActive()
	if err != nil {
		return err
	}
	failed, err := idx.Bulk(ctx, items)
	if err != nil {
		return err
	}
	log.Printf("reindexed %d food items (%d failed)", len(items)-failed, failed)
	return nil
}
