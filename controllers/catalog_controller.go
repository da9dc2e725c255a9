package controllers

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *services.CatalogService
}

func NewCatalogController(s *services.CatalogService) *CatalogController {
	return &CatalogController{Service: s}
}

// GET /categories/
func (ctl *CatalogController) Categories(c *gin.Context) {
	cats, err := ctl.Service.ListCategories(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": cats, "count": len(cats)})
}

// GET /search-history/
func (ctl *CatalogController) SearchHistory(c *gin.Context) {
	v, _ := viewer(c)
	page, pageSize := pageParams(c)
	rows, total, err := ctl.Service.SearchHistory(c.Request.Context(), v, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(rows, total, page, pageSize))
}
