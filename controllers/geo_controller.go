package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

type GeoController struct {
	Geocoder services.Geocoder
	Location *services.LocationService

	// browser key for the map widget; empty when not configured
	MapsAPIKey string
}

func NewGeoController(g services.Geocoder, l *services.LocationService, mapsAPIKey string) *GeoController {
	return &GeoController{Geocoder: g, Location: l, MapsAPIKey: mapsAPIKey}
}

func pointQuery(c *gin.Context) (float64, float64, bool) {
	latStr, lonStr := c.Query("latitude"), c.Query("longitude")
	if latStr == "" || lonStr == "" {
		resp.BadRequest(c, "latitude and longitude are required")
		return 0, 0, false
	}
	lat, lon, err := geo.ParsePoint(latStr, lonStr)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return 0, 0, false
	}
	return lat, lon, true
}

// GET /geocode/?address=
func (ctl *GeoController) Geocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		resp.BadRequest(c, "address is required")
		return
	}
	res, err := ctl.Geocoder.Geocode(c.Request.Context(), address)
	if errors.Is(err, services.ErrNotFound) {
		resp.NotFound(c, "could not geocode address")
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /reverse-geocode/?latitude=&longitude= → always 200 for valid input
func (ctl *GeoController) ReverseGeocode(c *gin.Context) {
	lat, lon, ok := pointQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ReverseGeocodeOrPlaceholder(c.Request.Context(), ctl.Geocoder, lat, lon))
}

// GET /location-context/?latitude=&longitude=
func (ctl *GeoController) LocationContext(c *gin.Context) {
	lat, lon, ok := pointQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctl.Location.Context(c.Request.Context(), lat, lon))
}

// GET /api-key/ → key the frontend loads the map with
func (ctl *GeoController) MapsKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"google_maps_api_key": ctl.MapsAPIKey})
}
