package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultNominatimURL     = "https://nominatim.openstreetmap.org"
	defaultGoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeoUserAgent     = "RecipeHub-FoodMap/1.0"
	defaultGeocodeTimeout   = 10 * time.Second
)

// GeocodeResult is the answer to a forward geocode.
type GeocodeResult struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id,omitempty"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
}

// Location is the answer to a reverse geocode.
type Location struct {
	FormattedAddress string  `json:"formatted_address"`
	StreetAddress    string  `json:"street_address,omitempty"`
	Neighborhood     string  `json:"neighborhood,omitempty"`
	City             string  `json:"city"`
	State            string  `json:"state,omitempty"`
	Country          string  `json:"country"`
	PostalCode       string  `json:"postal_code,omitempty"`
	PlaceID          string  `json:"place_id,omitempty"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Geocoder resolves addresses to coordinates and back.
// Both calls fail with ErrNotFound when the provider has no answer and with
// ErrUpstreamUnavailable when the provider cannot be reached.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error)
}

// PlaceholderLocation is what callers show when reverse geocoding fails.
func PlaceholderLocation(lat, lon float64) Location {
	return Location{
		FormattedAddress: formatFloat(lat) + ", " + formatFloat(lon),
		City:             "Unknown",
		Country:          "Unknown",
		Latitude:         lat,
		Longitude:        lon,
	}
}

// ReverseGeocodeOrPlaceholder never fails; provider errors are logged.
func ReverseGeocodeOrPlaceholder(ctx context.Context, g Geocoder, lat, lon float64) Location {
	if g == nil {
		return PlaceholderLocation(lat, lon)
	}
	loc, err := g.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		log.Printf("reverse geocode %v,%v: %v", lat, lon, err)
		return PlaceholderLocation(lat, lon)
	}
	return *loc
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// joinAddress joins non-empty parts with ", ".
func joinAddress(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func streetAddress(number, road string) string {
	if road == "" {
		return ""
	}
	return strings.TrimSpace(number + " " + road)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// getJSON performs req and decodes a 2xx body into out.
// 4xx maps to ErrNotFound; transport errors, 5xx and bad bodies to ErrUpstreamUnavailable.
func getJSON(client *http.Client, req *http.Request, provider string, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s request: %v", ErrUpstreamUnavailable, provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrUpstreamUnavailable, provider, err)
	}
	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s returned status %d", ErrUpstreamUnavailable, provider, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s returned status %d", ErrNotFound, provider, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstreamUnavailable, provider, err)
	}
	return nil
}

func baseURL(configured, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(configured), "/")
	if base == "" {
		return fallback
	}
	return base
}

func httpClientOr(c *http.Client, timeout time.Duration) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: timeout}
}

// ===== Nominatim (OpenStreetMap), no key =====

type NominatimGeocoder struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

type nominatimAddress struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
}

type nominatimPlace struct {
	PlaceID     json.Number       `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address"`
	Error       string            `json:"error"`
}

func (g *NominatimGeocoder) do(ctx context.Context, path string, q url.Values, out any) error {
	u := baseURL(g.BaseURL, defaultNominatimURL) + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", firstNonEmpty(g.UserAgent, defaultGeoUserAgent))
	req.Header.Set("Accept", "application/json")
	return getJSON(httpClientOr(g.HTTPClient, defaultGeocodeTimeout), req, "nominatim", out)
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := g.do(ctx, "/search", q, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: no match for address %q", ErrNotFound, address)
	}
	p := places[0]
	lat, err1 := strconv.ParseFloat(p.Lat, 64)
	lon, err2 := strconv.ParseFloat(p.Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("%w: nominatim returned bad coordinates %q,%q", ErrUpstreamUnavailable, p.Lat, p.Lon)
	}
	res := &GeocodeResult{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: firstNonEmpty(p.DisplayName, address),
		PlaceID:          p.PlaceID.String(),
	}
	if p.Address != nil {
		res.City = firstNonEmpty(p.Address.City, p.Address.Town, p.Address.Village)
		res.Country = p.Address.Country
	}
	return res, nil
}

func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", formatFloat(lat))
	q.Set("lon", formatFloat(lon))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	var p nominatimPlace
	if err := g.do(ctx, "/reverse", q, &p); err != nil {
		return nil, err
	}
	if p.Error != "" || p.Address == nil {
		return nil, fmt.Errorf("%w: nominatim has no address for %v,%v", ErrNotFound, lat, lon)
	}

	a := p.Address
	street := streetAddress(a.HouseNumber, a.Road)
	neighborhood := firstNonEmpty(a.Neighbourhood, a.Suburb)
	city := firstNonEmpty(a.City, a.Town, a.Village)
	formatted := joinAddress(street, neighborhood, city, a.State, a.Postcode, a.Country)

	return &Location{
		FormattedAddress: firstNonEmpty(formatted, p.DisplayName, "Unknown location"),
		StreetAddress:    street,
		Neighborhood:     neighborhood,
		City:             city,
		State:            a.State,
		Country:          a.Country,
		PostalCode:       a.Postcode,
		PlaceID:          p.PlaceID.String(),
		Latitude:         lat,
		Longitude:        lon,
	}, nil
}

// ===== Google Geocoding, key-authenticated =====

type GoogleGeocoder struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type googleComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string            `json:"formatted_address"`
		PlaceID           string            `json:"place_id"`
		AddressComponents []googleComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) do(ctx context.Context, q url.Values) (*googleGeocodeResponse, error) {
	q.Set("key", g.APIKey)
	u := baseURL(g.BaseURL, defaultGoogleGeocodeURL) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create google geocode request: %w", err)
	}
	var out googleGeocodeResponse
	if err := getJSON(httpClientOr(g.HTTPClient, defaultGeocodeTimeout), req, "google geocode", &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return nil, fmt.Errorf("%w: google geocode status %s", ErrNotFound, out.Status)
	}
	return &out, nil
}

func componentsByType(cs []googleComponent) map[string]string {
	m := make(map[string]string, len(cs))
	for _, c := range cs {
		for _, t := range c.Types {
			if _, ok := m[t]; !ok {
				m[t] = c.LongName
			}
		}
	}
	return m
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	q := url.Values{}
	q.Set("address", address)
	out, err := g.do(ctx, q)
	if err != nil {
		return nil, err
	}
	r := out.Results[0]
	comp := componentsByType(r.AddressComponents)
	return &GeocodeResult{
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
		City:             firstNonEmpty(comp["locality"], comp["postal_town"]),
		Country:          comp["country"],
	}, nil
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error) {
	q := url.Values{}
	q.Set("latlng", formatFloat(lat)+","+formatFloat(lon))
	out, err := g.do(ctx, q)
	if err != nil {
		return nil, err
	}
	r := out.Results[0]
	comp := componentsByType(r.AddressComponents)
	return &Location{
		FormattedAddress: r.FormattedAddress,
		StreetAddress:    streetAddress(comp["street_number"], comp["route"]),
		Neighborhood:     firstNonEmpty(comp["neighborhood"], comp["sublocality"]),
		City:             firstNonEmpty(comp["locality"], comp["postal_town"]),
		State:            comp["administrative_area_level_1"],
		Country:          comp["country"],
		PostalCode:       comp["postal_code"],
		PlaceID:          r.PlaceID,
		Latitude:         lat,
		Longitude:        lon,
	}, nil
}
