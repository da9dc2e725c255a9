package controllers

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type DiscoveryController struct {
	Service *services.DiscoveryService
}

func NewDiscoveryController(s *services.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{Service: s}
}

// POST /food-items/nearby/
func (ctl *DiscoveryController) Nearby(c *gin.Context) {
	var req services.NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	res, err := ctl.Service.Nearby(c.Request.Context(), req, v)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":          mapToFoodItemResponses(res.Results),
		"count":            res.Count,
		"page":             res.Page,
		"page_size":        res.PageSize,
		"radius":           res.Radius,
		"center":           res.Center,
		"location_context": res.LocationContext,
		"search_area":      res.SearchArea,
	})
}

// POST /food-items/search/
func (ctl *DiscoveryController) Search(c *gin.Context) {
	var req services.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, _ := viewer(c)
	res, err := ctl.Service.Search(c.Request.Context(), req, v)
	if err != nil {
		resp.Error(c, err)
		return
	}
	body := gin.H{
		"results": mapToFoodItemResponses(res.Results),
		"count":     res.Count,
		"page":      res.Page,
		"page_size": res.PageSize,
		"query":     res.Query,
	}
	if res.LocationContext != nil {
		body["location_context"] = res.LocationContext
	}
	c.JSON(http.StatusOK, body)
}
