package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/SrwR16/RecipeHub/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// viewer builds the caller context: identity from the auth middleware and an
// optional position from user_latitude / user_longitude.
func viewer(c *gin.Context) (services.Viewer, error) {
	v := services.Viewer{
		UserID:   utils.CurrentUserID(c),
		Username: utils.CurrentUsername(c),
	}
	latStr, lonStr := c.Query("user_latitude"), c.Query("user_longitude")
	if latStr == "" && lonStr == "" {
		return v, nil
	}
	lat, lon, err := geo.ParsePoint(latStr, lonStr)
	if err != nil {
		return v, err
	}
	v.Latitude, v.Longitude = &lat, &lon
	return v, nil
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", services.ErrNotFound, c.Param(name))
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

func pageParams(c *gin.Context) (int, int) {
	return queryInt(c, "page", 1), queryInt(c, "page_size", services.DefaultPageSize)
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", services.ErrInvalidArgument, key)
	}
	return &b, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", services.ErrInvalidArgument, key)
	}
	return &f, nil
}

// page envelope for paginated lists
func paginated(results any, count int64, page, pageSize int) gin.H {
	_, limit := services.NormalizePage(page, pageSize)
	if page < 1 {
		page = 1
	}
	return gin.H{"count": count, "page": page, "page_size": limit, "results": results}
}
