package controllers

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Service *services.FavoriteService
}

func NewFavoriteController(s *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Service: s}
}

// POST /food-items/:id/favorite/ → 201 when added, 200 when removed
func (ctl *FavoriteController) Toggle(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	v, _ := viewer(c)
	isFav, err := ctl.Service.Toggle(c.Request.Context(), id, v)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if isFav {
		c.JSON(http.StatusCreated, gin.H{"message": "Food item added to favorites", "is_favorite": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item removed from favorites", "is_favorite": false})
}

// GET /favorites/
func (ctl *FavoriteController) List(c *gin.Context) {
	v, err := viewer(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	page, pageSize := pageParams(c)
	favs, total, err := ctl.Service.List(c.Request.Context(), v, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	out := make([]FavoriteResponse, 0, len(favs))
	for i := range favs {
		out = append(out, FavoriteResponse{
			ID:        favs[i].ID,
			FoodItem:  mapToFoodItemResponse(&favs[i].Item),
			Notes:     favs[i].Notes,
			CreatedAt: favs[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, paginated(out, total, page, pageSize))
}
