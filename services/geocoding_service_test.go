package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimReverseGeocodeParsesAddress(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "FoodMapTest/1.0" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Query().Get("lat") != "40.7128" || r.URL.Query().Get("zoom") != "18" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "place_id": 12345,
  "display_name": "City Hall, New York",
  "address": {
    "house_number": "1",
    "road": "Centre Street",
    "suburb": "Manhattan",
    "city": "New York",
    "state": "New York",
    "postcode": "10007",
    "country": "United States"
  }
}`))
	}))
	defer ts.Close()

	g := &NominatimGeocoder{BaseURL: ts.URL, UserAgent: "FoodMapTest/1.0", HTTPClient: ts.Client()}
	loc, err := g.ReverseGeocode(context.Background(), 40.7128, -74.006)
	if err != nil {
		t.Fatalf("reverse geocode: %v", err)
	}
	if loc.FormattedAddress != "1 Centre Street, Manhattan, New York, New York, 10007, United States" {
		t.Fatalf("unexpected formatted address: %q", loc.FormattedAddress)
	}
	if loc.City != "New York" || loc.Neighborhood != "Manhattan" || loc.PostalCode != "10007" || loc.PlaceID != "12345" {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestNominatimReverseGeocodeFallsBackToTown(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"place_id": 1, "display_name": "x", "address": {"town": "Hobbiton", "country": "Shire"}}`))
	}))
	defer ts.Close()

	g := &NominatimGeocoder{BaseURL: ts.URL, HTTPClient: ts.Client()}
	loc, err := g.ReverseGeocode(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("reverse geocode: %v", err)
	}
	if loc.City != "Hobbiton" || loc.FormattedAddress != "Hobbiton, Shire" {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestNominatimErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"no match", http.StatusOK, `[]`, ErrNotFound},
		{"server error", http.StatusInternalServerError, `oops`, ErrUpstreamUnavailable},
		{"bad request", http.StatusBadRequest, `{}`, ErrNotFound},
		{"garbage body", http.StatusOK, `<html>`, ErrUpstreamUnavailable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			g := &NominatimGeocoder{BaseURL: ts.URL, HTTPClient: ts.Client()}
			if _, err := g.Geocode(context.Background(), "nowhere"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNominatimReverseWithoutAddressIsNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer ts.Close()

	g := &NominatimGeocoder{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := g.ReverseGeocode(context.Background(), 0, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNominatimGeocode(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.URL.Query().Get("q") != "City Hall" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"place_id": 7, "lat": "40.7127", "lon": "-74.0059", "display_name": "City Hall, New York", "address": {"city": "New York", "country": "United States"}}]`))
	}))
	defer ts.Close()

	g := &NominatimGeocoder{BaseURL: ts.URL, HTTPClient: ts.Client()}
	res, err := g.Geocode(context.Background(), "City Hall")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if res.Latitude != 40.7127 || res.Longitude != -74.0059 || res.City != "New York" || res.PlaceID != "7" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestReverseGeocodeTimeoutFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client := ts.Client()
	client.Timeout = 50 * time.Millisecond
	g := &NominatimGeocoder{BaseURL: ts.URL, HTTPClient: client}

	if _, err := g.ReverseGeocode(context.Background(), 40.7128, -74.006); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream error on timeout, got %v", err)
	}
	loc := ReverseGeocodeOrPlaceholder(context.Background(), g, 40.7128, -74.006)
	if loc.FormattedAddress != "40.7128, -74.006" || loc.City != "Unknown" || loc.Country != "Unknown" {
		t.Fatalf("unexpected placeholder: %+v", loc)
	}
}

func TestGoogleGeocoder(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("api key not sent")
		}
		if r.URL.Query().Get("address") == "nowhere" {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
			return
		}
		_, _ = w.Write([]byte(`{
  "status": "OK",
  "results": [{
    "formatted_address": "1 Centre St, New York, NY 10007, USA",
    "place_id": "ChIJ",
    "geometry": {"location": {"lat": 40.7128, "lng": -74.006}},
    "address_components": [
      {"long_name": "1", "types": ["street_number"]},
      {"long_name": "Centre Street", "types": ["route"]},
      {"long_name": "Manhattan", "types": ["sublocality", "political"]},
      {"long_name": "New York", "types": ["locality", "political"]},
      {"long_name": "New York", "types": ["administrative_area_level_1", "political"]},
      {"long_name": "United States", "types": ["country", "political"]},
      {"long_name": "10007", "types": ["postal_code"]}
    ]
  }]
}`))
	}))
	defer ts.Close()

	g := &GoogleGeocoder{BaseURL: ts.URL, APIKey: "secret", HTTPClient: ts.Client()}

	res, err := g.Geocode(context.Background(), "City Hall")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if res.Latitude != 40.7128 || res.City != "New York" || res.Country != "United States" || res.PlaceID != "ChIJ" {
		t.Fatalf("unexpected result: %+v", res)
	}

	loc, err := g.ReverseGeocode(context.Background(), 40.7128, -74.006)
	if err != nil {
		t.Fatalf("reverse geocode: %v", err)
	}
	if loc.StreetAddress != "1 Centre Street" || loc.Neighborhood != "Manhattan" || loc.State != "New York" || loc.PostalCode != "10007" {
		t.Fatalf("unexpected location: %+v", loc)
	}

	if _, err := g.Geocode(context.Background(), "nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for ZERO_RESULTS, got %v", err)
	}
}
