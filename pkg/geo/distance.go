// Package geo holds the coordinate math shared by the food map: great-circle
// distance, coordinate validation and the SQL form of the distance formula.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	EarthRadiusKm = 6371.0
	EarthRadiusM  = 6371000.0

	// KmPerDegree approximates one degree of latitude.
	KmPerDegree = 111.0
)

var ErrInvalidCoordinate = errors.New("invalid coordinates")

// Haversine returns the great-circle distance in kilometers, rounded to 2 decimals.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Round(haversine(lat1, lon1, lat2, lon2, EarthRadiusKm)*100) / 100
}

// HaversineMeters returns the unrounded distance in meters.
// DistanceSQL computes the same value inside the database.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return haversine(lat1, lon1, lat2, lon2, EarthRadiusM)
}

func haversine(lat1, lon1, lat2, lon2, radius float64) float64 {
	lat1, lon1 = toRadians(lat1), toRadians(lon1)
	lat2, lon2 = toRadians(lat2), toRadians(lon2)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * radius * math.Asin(math.Min(1, math.Sqrt(a)))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// ValidateCoordinates checks lat ∈ [-90,90] and lon ∈ [-180,180].
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: latitude %v, longitude %v", ErrInvalidCoordinate, lat, lon)
	}
	return nil
}

// ParseCoordinate parses a decimal-degree string.
func ParseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return v, nil
}

// ParsePoint parses and validates a latitude/longitude pair.
func ParsePoint(latStr, lonStr string) (float64, float64, error) {
	lat, err := ParseCoordinate(latStr)
	if err != nil {
		return 0, 0, err
	}
	lon, err := ParseCoordinate(lonStr)
	if err != nil {
		return 0, 0, err
	}
	if err := ValidateCoordinates(lat, lon); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// RoundCoordinate keeps 8 decimal places, the precision of the stored columns.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
