package routes

import (
	"net/http"

	"github.com/SrwR16/RecipeHub/controllers"
	"github.com/SrwR16/RecipeHub/middlewares"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	FoodItems *services.FoodItemService
	Discovery *services.DiscoveryService
	Reviews   *services.ReviewService
	Favorites *services.FavoriteService
	Catalog   *services.CatalogService
	Location  *services.LocationService
	Geocoder  services.Geocoder

	GoogleMapsAPIKey string
}

func RegisterRoutes(r *gin.Engine, s Services, jwtSecret string) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Controllers
	foodCtrl := controllers.NewFoodItemController(s.FoodItems)
	discCtrl := controllers.NewDiscoveryController(s.Discovery)
	reviewCtrl := controllers.NewReviewController(s.Reviews)
	favCtrl := controllers.NewFavoriteController(s.Favorites)
	catalogCtrl := controllers.NewCatalogController(s.Catalog)
	geoCtrl := controllers.NewGeoController(s.Geocoder, s.Location, s.GoogleMapsAPIKey)

	auth := middlewares.AuthMiddleware(jwtSecret)
	optional := middlewares.OptionalAuth(jwtSecret)

	// Public
	r.GET("/categories/", catalogCtrl.Categories)
	r.GET("/geocode/", geoCtrl.Geocode)
	r.GET("/reverse-geocode/", geoCtrl.ReverseGeocode)
	r.GET("/location-context/", geoCtrl.LocationContext)
	r.GET("/api-key/", geoCtrl.MapsKey)

	// Food items (anonymous or identified)
	items := r.Group("/food-items", optional)
	{
		items.GET("/", foodCtrl.List)
		items.POST("/nearby/", discCtrl.Nearby)
		items.POST("/search/", discCtrl.Search)
		items.GET("/:id/", foodCtrl.Detail)
		items.GET("/:id/reviews/", reviewCtrl.List)
	}

	// Food items (login required)
	itemsAuth := r.Group("/food-items", auth)
	{
		itemsAuth.POST("/", foodCtrl.Create)
		itemsAuth.PATCH("/:id/", foodCtrl.Update)
		itemsAuth.PUT("/:id/", foodCtrl.Update)
		itemsAuth.DELETE("/:id/", foodCtrl.Delete)
		itemsAuth.POST("/:id/images/", foodCtrl.AddImage)
		itemsAuth.POST("/:id/reviews/", reviewCtrl.Create)
		itemsAuth.POST("/:id/favorite/", favCtrl.Toggle)
	}

	// Profile
	me := r.Group("/", auth)
	{
		me.GET("/favorites/", favCtrl.List)
		me.GET("/search-history/", catalogCtrl.SearchHistory)
	}
}
