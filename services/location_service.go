package services

import (
	"context"
	"sync"
)

// ContextRadiusKm is the venue radius of a location context.
const ContextRadiusKm = 1.0

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationContext describes the surroundings of a point.
type LocationContext struct {
	UserLocation      Location    `json:"user_location"`
	NearbyRestaurants []Place     `json:"nearby_restaurants"`
	Coordinates       Coordinates `json:"coordinates"`
}

type LocationService struct {
	Geocoder Geocoder
	Places   PlacesFinder
}

func NewLocationService(g Geocoder, p PlacesFinder) *LocationService {
	return &LocationService{Geocoder: g, Places: p}
}

// Context never fails: each lookup degrades on its own.
func (s *LocationService) Context(ctx context.Context, lat, lon float64) LocationContext {
	out := LocationContext{Coordinates: Coordinates{Latitude: lat, Longitude: lon}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.UserLocation = ReverseGeocodeOrPlaceholder(ctx, s.Geocoder, lat, lon)
	}()
	go func() {
		defer wg.Done()
		out.NearbyRestaurants = NearbyOrEmpty(ctx, s.Places, lat, lon, ContextRadiusKm, "")
	}()
	wg.Wait()

	return out
}
