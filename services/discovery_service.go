package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/google/uuid"
)

const (
	DefaultNearbyRadius = 2000 // meters
	DefaultSearchRadius = 5000
	MinRadius           = 100
	MaxRadius           = 10000

	MaxQueryLength = 500
)

type NearbyRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Radius       *int     `json:"radius"`
	Category     string   `json:"category"`
	FoodType     string   `json:"food_type"`
	MaxPrice     *float64 `json:"max_price"`
	IsVegetarian bool     `json:"is_vegetarian"`
	IsVegan      bool     `json:"is_vegan"`
	IsGlutenFree bool     `json:"is_gluten_free"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
}

type SearchArea struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type NearbyResult struct {
	Results         []FoodItemView
	Count           int64 // all matches, not just this page
	Page            int
	PageSize        int
	Radius          int
	Center          Coordinates
	LocationContext LocationContext
	SearchArea      SearchArea
}

type SearchRequest struct {
	Query     string   `json:"query"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *int     `json:"radius"`
	Page      int      `json:"page"`
	PageSize  int      `json:"page_size"`
}

type SearchResult struct {
	Results         []FoodItemView
	Count           int64 // all matches, not just this page
	Page            int
	PageSize        int
	Query           string
	LocationContext *LocationContext
}

// DiscoveryService answers proximity and free-text searches.
type DiscoveryService struct {
	Items    *repository.FoodItemRepository
	Foods    *FoodItemService
	History  *repository.SearchHistoryRepository
	Users    *repository.UserRepository
	Location *LocationService
}

func NewDiscoveryService(
	items *repository.FoodItemRepository,
	foods *FoodItemService,
	history *repository.SearchHistoryRepository,
	users *repository.UserRepository,
	location *LocationService,
) *DiscoveryService {
	return &DiscoveryService{Items: items, Foods: foods, History: history, Users: users, Location: location}
}

func radiusOr(r *int, def int) (int, error) {
	if r == nil {
		return def, nil
	}
	if *r < MinRadius || *r > MaxRadius {
		return 0, fmt.Errorf("%w: radius must be between %d and %d meters", ErrInvalidArgument, MinRadius, MaxRadius)
	}
	return *r, nil
}

func requirePoint(lat, lon *float64) (float64, float64, error) {
	if lat == nil || lon == nil {
		return 0, 0, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidArgument)
	}
	if err := geo.ValidateCoordinates(*lat, *lon); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return *lat, *lon, nil
}

func trueOnly(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}

// discoveryPage defaults to the largest page so a first request sees as
// many matches as the list endpoint allows.
func discoveryPage(page, pageSize int) (p, offset, limit int) {
	if pageSize <= 0 {
		pageSize = MaxPageSize
	}
	offset, limit = NormalizePage(page, pageSize)
	return offset/limit + 1, offset, limit
}

// within loads one page of the items inside radiusM meters, nearest first,
// decorated for a viewer standing at the center.
func (s *DiscoveryService) within(lat, lon float64, radiusM int, f repository.FoodItemFilter, offset, limit int, v Viewer) ([]FoodItemView, int64, error) {
	hits, total, err := s.Items.WithinRadius(lat, lon, float64(radiusM), f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	items, err := s.Items.FindByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	v.Latitude, v.Longitude = &lat, &lon
	views, err := s.Foods.Decorate(items, v)
	return views, total, err
}

// contextAsync fetches the location context while the caller queries the store.
func (s *DiscoveryService) contextAsync(ctx context.Context, lat, lon float64) <-chan LocationContext {
	ch := make(chan LocationContext, 1)
	go func() { ch <- s.Location.Context(ctx, lat, lon) }()
	return ch
}

// Nearby finds active items within the radius of a point.
func (s *DiscoveryService) Nearby(ctx context.Context, req NearbyRequest, v Viewer) (*NearbyResult, error) {
	lat, lon, err := requirePoint(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	radius, err := radiusOr(req.Radius, DefaultNearbyRadius)
	if err != nil {
		return nil, err
	}
	if req.FoodType != "" && !entity.FoodType(req.FoodType).Valid() {
		return nil, fmt.Errorf("%w: unknown food_type %q", ErrInvalidArgument, req.FoodType)
	}
	if req.MaxPrice != nil && *req.MaxPrice < 0 {
		return nil, fmt.Errorf("%w: max_price must be >= 0", ErrInvalidArgument)
	}

	lc := s.contextAsync(ctx, lat, lon)

	f := repository.FoodItemFilter{
		Category:     strings.TrimSpace(req.Category),
		FoodType:     req.FoodType,
		MaxPrice:     req.MaxPrice,
		IsVegetarian: trueOnly(req.IsVegetarian),
		IsVegan:      trueOnly(req.IsVegan),
		IsGlutenFree: trueOnly(req.IsGlutenFree),
	}
	page, offset, limit := discoveryPage(req.Page, req.PageSize)
	results, total, err := s.within(lat, lon, radius, f, offset, limit, v)
	if err != nil {
		<-lc
		return nil, err
	}
	locCtx := <-lc

	addr := locCtx.UserLocation
	s.record(v, fmt.Sprintf("Nearby search (%dm radius)", radius), addr.FormattedAddress, &lat, &lon, total)

	return &NearbyResult{
		Results:         results,
		Count:           total,
		Page:            page,
		PageSize:        limit,
		Radius:          radius,
		Center:          Coordinates{Latitude: lat, Longitude: lon},
		LocationContext: locCtx,
		SearchArea:      SearchArea{Address: addr.FormattedAddress, City: addr.City, Country: addr.Country},
	}, nil
}

// Search filters by text first and, when a point is given, by distance second.
func (s *DiscoveryService) Search(ctx context.Context, req SearchRequest, v Viewer) (*SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, fmt.Errorf("%w: query is longer than %d characters", ErrInvalidArgument, MaxQueryLength)
	}
	f := repository.FoodItemFilter{Query: query}
	page, offset, limit := discoveryPage(req.Page, req.PageSize)
	out := &SearchResult{Query: query, Page: page, PageSize: limit}

	if req.Latitude == nil && req.Longitude == nil {
		items, total, err := s.Items.List(f, offset, limit)
		if err != nil {
			return nil, err
		}
		if out.Results, err = s.Foods.Decorate(items, v); err != nil {
			return nil, err
		}
		out.Count = total
		s.record(v, query, "", nil, nil, out.Count)
		return out, nil
	}

	lat, lon, err := requirePoint(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	radius, err := radiusOr(req.Radius, DefaultSearchRadius)
	if err != nil {
		return nil, err
	}

	lc := s.contextAsync(ctx, lat, lon)
	results, total, err := s.within(lat, lon, radius, f, offset, limit, v)
	if err != nil {
		<-lc
		return nil, err
	}
	locCtx := <-lc

	out.Results = results
	out.Count = total
	out.LocationContext = &locCtx
	s.record(v, query, locCtx.UserLocation.FormattedAddress, &lat, &lon, out.Count)
	return out, nil
}

// record appends a history row for identified callers. A failed write is
// logged and the search still succeeds.
func (s *DiscoveryService) record(v Viewer, query, location string, lat, lon *float64, count int64) {
	if !v.Authenticated() || s.History == nil {
		return
	}
	if err := s.Users.Ensure(v.UserID, v.Username); err != nil {
		log.Printf("search history for user %d: %v", v.UserID, err)
		return
	}
	uid := v.UserID
	h := entity.SearchHistory{
		UserID:       &uid,
		Query:        truncate(query, MaxQueryLength),
		Location:     truncate(location, 200),
		Latitude:     lat,
		Longitude:    lon,
		ResultsCount: int(count),
	}
	if err := s.History.Append(&h); err != nil {
		log.Printf("search history for user %d: %v", v.UserID, err)
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
