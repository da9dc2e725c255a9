package controllers

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type FoodItemController struct {
	Service *services.FoodItemService
}

func NewFoodItemController(s *services.FoodItemService) *FoodItemController {
	return &FoodItemController{Service: s}
}

func listFilter(c *gin.Context) (repository.FoodItemFilter, error) {
	f := repository.FoodItemFilter{
		Category:           c.Query("category"),
		FoodType:           c.Query("food_type"),
		City:               c.Query("city"),
		Search:             c.Query("search"),
		AvailabilityStatus: c.Query("availability_status"),
	}
	var err error
	for key, dst := range map[string]**bool{
		"is_vegetarian":  &f.IsVegetarian,
		"is_vegan":       &f.IsVegan,
		"is_gluten_free": &f.IsGlutenFree,
		"is_halal":       &f.IsHalal,
	} {
		if *dst, err = queryBool(c, key); err != nil {
			return f, err
		}
	}
	if f.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return f, err
	}
	return f, nil
}

// GET /food-items/
func (ctl *FoodItemController) List(c *gin.Context) {
	v, err := viewer(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	f, err := listFilter(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	page, pageSize := pageParams(c)
	views, total, err := ctl.Service.List(c.Request.Context(), f, page, pageSize, v)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(mapToFoodItemResponses(views), total, page, pageSize))
}

// GET /food-items/:id/
func (ctl *FoodItemController) Detail(c *gin.Context) {
	v, err := viewer(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	d, err := ctl.Service.Get(c.Request.Context(), id, v)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, mapToFoodItemDetailResponse(d))
}

// POST /food-items/
func (ctl *FoodItemController) Create(c *gin.Context) {
	var in services.FoodItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	view, err := ctl.Service.Create(c.Request.Context(), v, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapToFoodItemResponse(view))
}

// PATCH|PUT /food-items/:id/
func (ctl *FoodItemController) Update(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var in services.FoodItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	view, err := ctl.Service.Update(c.Request.Context(), id, v, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, mapToFoodItemResponse(view))
}

// DELETE /food-items/:id/ → soft delete
func (ctl *FoodItemController) Delete(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	v, _ := viewer(c)
	if err := ctl.Service.Delete(c.Request.Context(), id, v); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /food-items/:id/images/
func (ctl *FoodItemController) AddImage(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var in services.ImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	img, err := ctl.Service.AddImage(c.Request.Context(), id, v, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapToImageResponse(img))
}
