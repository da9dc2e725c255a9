package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SrwR16/RecipeHub/pkg/geo"
)

const (
	defaultOverpassURL   = "https://overpass-api.de/api/interpreter"
	defaultPlacesTimeout = 30 * time.Second

	// MaxNearbyPlaces caps every Overpass answer.
	MaxNearbyPlaces = 20
)

// Place is a food venue found through OpenStreetMap.
type Place struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Distance     float64 `json:"distance"` // km
	Amenity      string  `json:"amenity"`
	Cuisine      string  `json:"cuisine"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Website      string  `json:"website"`
	OpeningHours string  `json:"opening_hours"`
}

// PlacesFinder looks up venues around a point.
type PlacesFinder interface {
	FindNearby(ctx context.Context, lat, lon, radiusKm float64, placeType string) ([]Place, error)
}

// OverpassClient queries an Overpass API endpoint.
type OverpassClient struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

type overpassResponse struct {
	Elements []struct {
		Type   string            `json:"type"`
		Lat    *float64          `json:"lat"`
		Lon    *float64          `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func amenityFilter(placeType string) string {
	switch placeType {
	case "restaurant", "cafe", "fast_food":
		return fmt.Sprintf(`amenity="%s"`, placeType)
	default:
		return `amenity~"restaurant|cafe|fast_food|bar|pub"`
	}
}

func overpassQuery(box geo.BoundingBox, placeType string) string {
	f := amenityFilter(placeType)
	bbox := box.Overpass()
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&b, "  %s[%s]%s;\n", kind, f, bbox)
	}
	b.WriteString(");\nout center meta;\n")
	return b.String()
}

// FindNearby returns at most MaxNearbyPlaces venues within radiusKm of
// (lat, lon), nearest first. placeType is restaurant, cafe, fast_food or
// empty for any food or drink venue.
func (c *OverpassClient) FindNearby(ctx context.Context, lat, lon, radiusKm float64, placeType string) ([]Place, error) {
	box := geo.BoundingBoxAround(lat, lon, radiusKm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL(c.BaseURL, defaultOverpassURL), strings.NewReader(overpassQuery(box, placeType)))
	if err != nil {
		return nil, fmt.Errorf("create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("User-Agent", firstNonEmpty(c.UserAgent, defaultGeoUserAgent))

	var out overpassResponse
	if err := getJSON(httpClientOr(c.HTTPClient, defaultPlacesTimeout), req, "overpass", &out); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(out.Elements))
	for _, el := range out.Elements {
		var pLat, pLon float64
		switch {
		case el.Type == "node" && el.Lat != nil && el.Lon != nil:
			pLat, pLon = *el.Lat, *el.Lon
		case el.Center != nil:
			pLat, pLon = el.Center.Lat, el.Center.Lon
		default:
			continue
		}

		// the box is wider than the circle; filter on the unrounded distance
		if geo.HaversineMeters(lat, lon, pLat, pLon)/1000 > radiusKm {
			continue
		}
		d := geo.Haversine(lat, lon, pLat, pLon)
		tags := el.Tags
		places = append(places, Place{
			Name:         firstNonEmpty(tags["name"], "Unnamed location"),
			Latitude:     pLat,
			Longitude:    pLon,
			Distance:     d,
			Amenity:      tags["amenity"],
			Cuisine:      tags["cuisine"],
			Address:      tags["addr:full"],
			Phone:        tags["phone"],
			Website:      tags["website"],
			OpeningHours: tags["opening_hours"],
		})
	}

	sort.SliceStable(places, func(i, j int) bool { return places[i].Distance < places[j].Distance })
	if len(places) > MaxNearbyPlaces {
		places = places[:MaxNearbyPlaces]
	}
	return places, nil
}

// NearbyOrEmpty degrades any failure to an empty list.
func NearbyOrEmpty(ctx context.Context, f PlacesFinder, lat, lon, radiusKm float64, placeType string) []Place {
	if f == nil {
		return []Place{}
	}
	places, err := f.FindNearby(ctx, lat, lon, radiusKm, placeType)
	if err != nil {
		log.Printf("nearby places %v,%v: %v", lat, lon, err)
		return []Place{}
	}
	return places
}
