package geo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestHaversineSamePointIsZero(t *testing.T) {
	t.Parallel()
	points := [][2]float64{{0, 0}, {40.7128, -74.0060}, {-33.8688, 151.2093}, {90, 180}, {-90, -180}}
	for _, p := range points {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("distance from %v to itself: got %v, want 0", p, d)
		}
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	t.Parallel()
	pairs := [][4]float64{
		{40.7128, -74.0060, 51.5074, -0.1278},
		{35.6762, 139.6503, -33.8688, 151.2093},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Fatalf("asymmetric distance for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	t.Parallel()
	// New York to London is roughly 5570 km.
	d := Haversine(40.7128, -74.0060, 51.5074, -0.1278)
	if d < 5550 || d > 5590 {
		t.Fatalf("unexpected NY-London distance: %v", d)
	}
	if d != math.Round(d*100)/100 {
		t.Fatalf("distance not rounded to 2 decimals: %v", d)
	}
}

func TestHaversineMetersMatchesKilometers(t *testing.T) {
	t.Parallel()
	m := HaversineMeters(40.7128, -74.0060, 40.7130, -74.0061)
	if m <= 0 || m > 50 {
		t.Fatalf("expected a short distance under 50m, got %v", m)
	}
	km := Haversine(40.7128, -74.0060, 41.7128, -74.0060)
	mm := HaversineMeters(40.7128, -74.0060, 41.7128, -74.0060)
	if math.Abs(km-mm/1000) > 0.01 {
		t.Fatalf("km and meters disagree: %v km vs %v m", km, mm)
	}
}

func TestValidateCoordinates(t *testing.T) {
	t.Parallel()
	cases := []struct {
		lat, lon float64
		ok       bool
	}{
		{40.7128, -74.0060, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, -200, false},
		{91, -200, false},
		{math.NaN(), 0, false},
	}
	for _, tc := range cases {
		err := ValidateCoordinates(tc.lat, tc.lon)
		if tc.ok && err != nil {
			t.Fatalf("(%v,%v) should be valid: %v", tc.lat, tc.lon, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("(%v,%v) should be rejected, got %v", tc.lat, tc.lon, err)
		}
	}
}

func TestParsePoint(t *testing.T) {
	t.Parallel()
	lat, lon, err := ParsePoint(" 40.7128", "-74.0060 ")
	if err != nil {
		t.Fatalf("parse point: %v", err)
	}
	if lat != 40.7128 || lon != -74.0060 {
		t.Fatalf("unexpected point: %v,%v", lat, lon)
	}
	for _, in := range [][2]string{{"abc", "1"}, {"1", ""}, {"NaN", "1"}, {"91", "0"}} {
		if _, _, err := ParsePoint(in[0], in[1]); !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("expected invalid coordinate for %v, got %v", in, err)
		}
	}
}

func TestRoundCoordinate(t *testing.T) {
	t.Parallel()
	if got := RoundCoordinate(40.712812345678); got != 40.71281235 {
		t.Fatalf("unexpected rounding: %v", got)
	}
}

func TestBoundingBoxIsSupersetOfRadius(t *testing.T) {
	t.Parallel()
	box := BoundingBoxAround(40.7128, -74.0060, 1)
	if !box.Contains(40.7128, -74.0060) {
		t.Fatalf("box must contain its center")
	}
	// A corner of the box is inside it but farther than the radius.
	if !box.Contains(box.MaxLat, box.MaxLon) {
		t.Fatalf("box must contain its corner")
	}
	if d := Haversine(40.7128, -74.0060, box.MaxLat, box.MaxLon); d <= 1 {
		t.Fatalf("corner should lie outside the 1km circle, got %v km", d)
	}
	if !strings.HasPrefix(box.Overpass(), "(40.703791") {
		t.Fatalf("unexpected overpass bbox: %s", box.Overpass())
	}
}

func TestDistanceSQLArgs(t *testing.T) {
	t.Parallel()
	expr, args := DistanceSQL("latitude", "longitude", 1.5, 2.5)
	if !strings.Contains(expr, "RADIANS(latitude)") || !strings.Contains(expr, "RADIANS(longitude)") {
		t.Fatalf("expression does not reference columns: %s", expr)
	}
	if strings.Count(expr, "?") != len(args) {
		t.Fatalf("placeholder count %d does not match args %d", strings.Count(expr, "?"), len(args))
	}
	if args[0] != 1.5 || args[1] != 1.5 || args[2] != 2.5 {
		t.Fatalf("unexpected args: %v", args)
	}
}
