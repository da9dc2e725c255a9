package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating         int        `json:"rating"`
	Title          string     `json:"title"`
	Comment        string     `json:"comment"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WouldRecommend *bool      `json:"would_recommend"`
	ValueForMoney  *int       `json:"value_for_money"`
}

type ReviewService struct {
	Reviews *repository.ReviewRepository
	Items   *repository.FoodItemRepository
	Users   *repository.UserRepository
}

func NewReviewService(reviews *repository.ReviewRepository, items *repository.FoodItemRepository, users *repository.UserRepository) *ReviewService {
	return &ReviewService{Reviews: reviews, Items: items, Users: users}
}

// List returns one page of an item's active reviews, newest first.
func (s *ReviewService) List(ctx context.Context, itemID uuid.UUID, page, pageSize int) ([]entity.FoodItemReview, int64, error) {
	if _, err := s.Items.FindActiveByID(itemID); err != nil {
		return nil, 0, notFound(err, "food item")
	}
	offset, limit := NormalizePage(page, pageSize)
	return s.Reviews.ListForItem(itemID, offset, limit)
}

// Create adds the viewer's review. A user reviews an item once.
func (s *ReviewService) Create(ctx context.Context, itemID uuid.UUID, v Viewer, in ReviewInput) (*entity.FoodItemReview, error) {
	if !v.Authenticated() {
		return nil, fmt.Errorf("%w: login required", ErrPermissionDenied)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}
	if in.ValueForMoney != nil && (*in.ValueForMoney < 1 || *in.ValueForMoney > 5) {
		return nil, fmt.Errorf("%w: value_for_money must be between 1 and 5", ErrInvalidArgument)
	}
	if _, err := s.Items.FindActiveByID(itemID); err != nil {
		return nil, notFound(err, "food item")
	}

	exists, err := s.Reviews.ExistsForUser(itemID, v.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: you have already reviewed this food item", ErrAlreadyExists)
	}
	if err := s.Users.Ensure(v.UserID, v.Username); err != nil {
		return nil, err
	}

	rev := entity.FoodItemReview{
		FoodItemID:     itemID,
		UserID:         v.UserID,
		Rating:         in.Rating,
		Title:          strings.TrimSpace(in.Title),
		Comment:        strings.TrimSpace(in.Comment),
		PurchaseDate:   in.PurchaseDate,
		WouldRecommend: in.WouldRecommend,
		ValueForMoney:  in.ValueForMoney,
		IsActive:       true,
	}
	if err := s.Reviews.Create(&rev); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already reviewed this food item", ErrAlreadyExists)
		}
		return nil, err
	}
	return &rev, nil
}
