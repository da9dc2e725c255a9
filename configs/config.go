package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string

	// geocoding / places providers
	Geocoder         string
	NominatimURL     string
	GoogleMapsAPIKey string
	GoogleGeocodeURL string
	OverpassURL      string
	GeoUserAgent     string
	GeocodeTimeout   time.Duration
	PlacesTimeout    time.Duration

	// search index mirror; empty ElasticURL disables it
	ElasticURL   string
	ElasticIndex string

	CORSOrigins []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "foodmap.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),

		Geocoder:         getEnv("GEOCODER", "nominatim"),
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		GoogleGeocodeURL: getEnv("GOOGLE_GEOCODE_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
		OverpassURL:      getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		GeoUserAgent:     getEnv("GEO_USER_AGENT", "RecipeHub-FoodMap/1.0"),
		GeocodeTimeout:   getDuration("GEOCODE_TIMEOUT", 10*time.Second),
		PlacesTimeout:    getDuration("PLACES_TIMEOUT", 30*time.Second),

		ElasticURL:   os.Getenv("ELASTIC_URL"),
		ElasticIndex: getEnv("ELASTIC_INDEX", "food_items"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
