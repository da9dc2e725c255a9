package controllers

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *services.ReviewService
}

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// GET /food-items/:id/reviews/
func (ctl *ReviewController) List(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	page, pageSize := pageParams(c)
	reviews, total, err := ctl.Service.List(c.Request.Context(), id, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(mapToReviewResponses(reviews), total, page, pageSize))
}

// POST /food-items/:id/reviews/
func (ctl *ReviewController) Create(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	rev, err := ctl.Service.Create(c.Request.Context(), id, v, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapToReviewResponse(rev))
}
