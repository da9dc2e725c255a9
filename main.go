package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SrwR16/RecipeHub/configs"
	"github.com/SrwR16/RecipeHub/middlewares"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/SrwR16/RecipeHub/routes"
	"github.com/SrwR16/RecipeHub/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		log.Fatalf("connect database failed: %v", err)
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedCategories(db); err != nil {
		log.Fatalf("seed categories failed: %v", err)
	}

	// Geo providers
	geocodeHTTP := &http.Client{Timeout: cfg.GeocodeTimeout}
	var geocoder services.Geocoder
	switch cfg.Geocoder {
	case "google":
		if cfg.GoogleMapsAPIKey == "" {
			log.Fatalf("GEOCODER=google needs GOOGLE_MAPS_API_KEY")
		}
		geocoder = &services.GoogleGeocoder{BaseURL: cfg.GoogleGeocodeURL, APIKey: cfg.GoogleMapsAPIKey, HTTPClient: geocodeHTTP}
	default:
		geocoder = &services.NominatimGeocoder{BaseURL: cfg.NominatimURL, UserAgent: cfg.GeoUserAgent, HTTPClient: geocodeHTTP}
	}
	places := &services.OverpassClient{
		BaseURL:    cfg.OverpassURL,
		UserAgent:  cfg.GeoUserAgent,
		HTTPClient: &http.Client{Timeout: cfg.PlacesTimeout},
	}

	// Repositories
	itemRepo := repository.NewFoodItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	historyRepo := repository.NewSearchHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Search index mirror (optional)
	var index repository.FoodIndex = repository.NoopIndex{}
	var elasticIndex *repository.ElasticFoodIndex
	if cfg.ElasticURL != "" {
		elasticIndex, err = repository.NewElasticFoodIndex(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			log.Printf("search index disabled: %v", err)
		} else if err := elasticIndex.EnsureIndex(context.Background()); err != nil {
			log.Printf("search index disabled: %v", err)
			elasticIndex = nil
		} else {
			index = elasticIndex
		}
	}

	// Services
	location := services.NewLocationService(geocoder, places)
	foodSvc := services.NewFoodItemService(itemRepo, categoryRepo, favoriteRepo, reviewRepo, userRepo, geocoder, index)
	svc := routes.Services{
		FoodItems: foodSvc,
		Discovery: services.NewDiscoveryService(itemRepo, foodSvc, historyRepo, userRepo, location),
		Reviews:   services.NewReviewService(reviewRepo, itemRepo, userRepo),
		Favorites: services.NewFavoriteService(favoriteRepo, itemRepo, userRepo, foodSvc),
		Catalog:   services.NewCatalogService(categoryRepo, historyRepo),
		Location:  location,
		Geocoder:  geocoder,

		GoogleMapsAPIKey: cfg.GoogleMapsAPIKey,
	}

	if elasticIndex != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := foodSvc.Reindex(ctx, elasticIndex); err != nil {
				log.Printf("reindex failed: %v", err)
			}
		}()
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	routes.RegisterRoutes(r, svc, cfg.JWTSecret)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
