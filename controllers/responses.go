package controllers

import (
	"time"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/google/uuid"
)

// ====== Response DTO ======

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
}

type FoodItemResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	FoodType            string           `json:"food_type"`
	Category            CategoryResponse `json:"category"`
	Price               float64          `json:"price"`
	Currency            string           `json:"currency"`
	QuantityDescription string           `json:"quantity_description"`
	RestaurantName      string           `json:"restaurant_name"`
	Address             string           `json:"address"`
	Latitude            float64          `json:"latitude"`
	Longitude           float64          `json:"longitude"`
	City                string           `json:"city"`
	Country             string           `json:"country"`
	IsVegetarian        bool             `json:"is_vegetarian"`
	IsVegan             bool             `json:"is_vegan"`
	IsGlutenFree        bool             `json:"is_gluten_free"`
	IsHalal             bool             `json:"is_halal"`
	AvailabilityStatus  string           `json:"availability_status"`
	PrimaryImage        *string          `json:"primary_image"`
	Distance            *float64         `json:"distance"`
	IsFavorite          bool             `json:"is_favorite"`
	AverageRating       *float64         `json:"average_rating"`
	ReviewsCount        int64            `json:"reviews_count"`
	CreatedBy           UserResponse     `json:"created_by"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
}

type ImageResponse struct {
	ID         uuid.UUID    `json:"id"`
	Image      string       `json:"image"`
	Caption    string       `json:"caption"`
	IsPrimary  bool         `json:"is_primary"`
	UploadedBy UserResponse `json:"uploaded_by"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

type ReviewResponse struct {
	ID             uuid.UUID    `json:"id"`
	User           UserResponse `json:"user"`
	Rating         int          `json:"rating"`
	Title          string       `json:"title"`
	Comment        string       `json:"comment"`
	PurchaseDate   *time.Time   `json:"purchase_date"`
	WouldRecommend *bool        `json:"would_recommend"`
	ValueForMoney  *int         `json:"value_for_money"`
	IsVerified     bool         `json:"is_verified"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type FoodItemDetailResponse struct {
	FoodItemResponse
	Ingredients        string           `json:"ingredients"`
	PreparationTime    string           `json:"preparation_time"`
	ServingSize        string           `json:"serving_size"`
	ContactPhone       string           `json:"contact_phone"`
	ContactEmail       string           `json:"contact_email"`
	PickupInstructions string           `json:"pickup_instructions"`
	ContainsNuts       bool             `json:"contains_nuts"`
	AvailableFrom      *time.Time       `json:"available_from"`
	AvailableUntil     *time.Time       `json:"available_until"`
	IsVerified         bool             `json:"is_verified"`
	Images             []ImageResponse  `json:"images"`
	Reviews            []ReviewResponse `json:"reviews"`
	UserReview         *ReviewResponse  `json:"user_review"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type FavoriteResponse struct {
	ID        uuid.UUID        `json:"id"`
	FoodItem  FoodItemResponse `json:"food_item"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
}

func mapToUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func mapToFoodItemResponse(v *services.FoodItemView) FoodItemResponse {
	it := &v.FoodItem
	resp := FoodItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		FoodType:    string(it.FoodType),
		Category: CategoryResponse{
			ID:          it.Category.ID,
			Name:        it.Category.Name,
			Description: it.Category.Description,
			Icon:        it.Category.Icon,
			Color:       it.Category.Color,
		},
		Price:               it.Price,
		Currency:            it.Currency,
		QuantityDescription: it.QuantityDescription,
		RestaurantName:      it.RestaurantName,
		Address:             it.Address,
		Latitude:            it.Latitude,
		Longitude:           it.Longitude,
		City:                it.City,
		Country:             it.Country,
		IsVegetarian:        it.IsVegetarian,
		IsVegan:             it.IsVegan,
		IsGlutenFree:        it.IsGlutenFree,
		IsHalal:             it.IsHalal,
		AvailabilityStatus:  string(it.AvailabilityStatus),
		Distance:            v.Distance,
		IsFavorite:          v.IsFavorite,
		AverageRating:       v.AverageRating,
		ReviewsCount:        v.ReviewsCount,
		CreatedBy:           mapToUserResponse(&it.CreatedBy),
		IsActive:            it.IsActive,
		CreatedAt:           it.CreatedAt,
	}
	if v.PrimaryImage != nil {
		url := v.PrimaryImage.ImageURL
		resp.PrimaryImage = &url
	}
	return resp
}

func mapToFoodItemResponses(views []services.FoodItemView) []FoodItemResponse {
	out := make([]FoodItemResponse, 0, len(views))
	for i := range views {
		out = append(out, mapToFoodItemResponse(&views[i]))
	}
	return out
}

func mapToImageResponse(img *entity.FoodItemImage) ImageResponse {
	return ImageResponse{
		ID:         img.ID,
		Image:      img.ImageURL,
		Caption:    img.Caption,
		IsPrimary:  img.IsPrimary,
		UploadedBy: mapToUserResponse(&img.UploadedBy),
		UploadedAt: img.UploadedAt,
	}
}

func mapToReviewResponse(r *entity.FoodItemReview) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		User:           mapToUserResponse(&r.User),
		Rating:         r.Rating,
		Title:          r.Title,
		Comment:        r.Comment,
		PurchaseDate:   r.PurchaseDate,
		WouldRecommend: r.WouldRecommend,
		ValueForMoney:  r.ValueForMoney,
		IsVerified:     r.IsVerified,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func mapToReviewResponses(rs []entity.FoodItemReview) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(rs))
	for i := range rs {
		out = append(out, mapToReviewResponse(&rs[i]))
	}
	return out
}

func mapToFoodItemDetailResponse(d *services.FoodItemDetail) FoodItemDetailResponse {
	it := &d.FoodItem
	resp := FoodItemDetailResponse{
		FoodItemResponse:   mapToFoodItemResponse(&d.FoodItemView),
		Ingredients:        it.Ingredients,
		PreparationTime:    it.PreparationTime,
		ServingSize:        it.ServingSize,
		ContactPhone:       it.ContactPhone,
		ContactEmail:       it.ContactEmail,
		PickupInstructions: it.PickupInstructions,
		ContainsNuts:       it.ContainsNuts,
		AvailableFrom:      it.AvailableFrom,
		AvailableUntil:     it.AvailableUntil,
		IsVerified:         it.IsVerified,
		Images:             make([]ImageResponse, 0, len(it.Images)),
		Reviews:            mapToReviewResponses(d.Reviews),
		UpdatedAt:          it.UpdatedAt,
	}
	for i := range it.Images {
		resp.Images = append(resp.Images, mapToImageResponse(&it.Images[i]))
	}
	if d.UserReview != nil {
		ur := mapToReviewResponse(d.UserReview)
		resp.UserReview = &ur
	}
	return resp
}
