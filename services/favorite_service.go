package services

import (
	"context"
	"fmt"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/google/uuid"
)

type FavoriteService struct {
	Favorites *repository.FavoriteRepository
	Items     *repository.FoodItemRepository
	Users     *repository.UserRepository
	Foods     *FoodItemService
}

func NewFavoriteService(favorites *repository.FavoriteRepository, items *repository.FoodItemRepository, users *repository.UserRepository, foods *FoodItemService) *FavoriteService {
	return &FavoriteService{Favorites: favorites, Items: items, Users: users, Foods: foods}
}

// Toggle flips the favorite state and returns the new one.
func (s *FavoriteService) Toggle(ctx context.Context, itemID uuid.UUID, v Viewer) (bool, error) {
	if !v.Authenticated() {
		return false, fmt.Errorf("%w: login required", ErrPermissionDenied)
	}
	if _, err := s.Items.FindActiveByID(itemID); err != nil {
		return false, notFound(err, "food item")
	}
	if err := s.Users.Ensure(v.UserID, v.Username); err != nil {
		return false, err
	}
	return s.Favorites.Toggle(v.UserID, itemID)
}

// FavoriteView is a favorite with its decorated item.
type FavoriteView struct {
	entity.UserFavoriteFoodItem
	Item FoodItemView
}

// List returns one page of the viewer's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, v Viewer, page, pageSize int) ([]FavoriteView, int64, error) {
	offset, limit := NormalizePage(page, pageSize)
	favs, total, err := s.Favorites.ListForUser(v.UserID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	items := make([]entity.FoodItem, len(favs))
	for i := range favs {
		items[i] = favs[i].FoodItem
	}
	views, err := s.Foods.Decorate(items, v)
	if err != nil {
		return nil, 0, err
	}
	out := make([]FavoriteView, len(favs))
	for i := range favs {
		out[i] = FavoriteView{UserFavoriteFoodItem: favs[i], Item: views[i]}
	}
	return out, total, nil
}
