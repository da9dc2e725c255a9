package geo

import "fmt"

// BoundingBox is a lat/lon rectangle used as a cheap pre-filter.
// It is a superset of the circle it was built from; callers still need an
// exact distance check.
type BoundingBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// BoundingBoxAround converts radiusKm to degrees with radiusKm / 111.
func BoundingBoxAround(lat, lon, radiusKm float64) BoundingBox {
	d := radiusKm / KmPerDegree
	return BoundingBox{
		MinLat: lat - d,
		MinLon: lon - d,
		MaxLat: lat + d,
		MaxLon: lon + d,
	}
}

// Contains reports whether the point lies inside the box, edges included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Overpass renders the box in Overpass QL order: (south,west,north,east).
func (b BoundingBox) Overpass() string {
	return fmt.Sprintf("(%f,%f,%f,%f)", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}
