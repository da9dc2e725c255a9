package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/pkg/geo"
)

func TestNearbyFindsCloseItem(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createItem(t, 1, "Hot dog cart", 40.7128, -74.0060)

	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude:  ptr(40.7130),
		Longitude: ptr(-74.0061),
		Radius:    ptr(2000),
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Count != 1 || len(res.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", res.Count)
	}
	d := res.Results[0].Distance
	if d == nil || *d*1000 >= 50 {
		t.Fatalf("expected distance under 50m, got %v", d)
	}
	if res.Radius != 2000 || res.Center.Latitude != 40.7130 {
		t.Fatalf("unexpected envelope: radius %d center %+v", res.Radius, res.Center)
	}
	if res.SearchArea.City != "New York" || len(res.LocationContext.NearbyRestaurants) != 1 {
		t.Fatalf("location context not attached: %+v", res.SearchArea)
	}
}

func TestNearbyMinimumRadiusExcludesFarItem(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	// about 5km north
	env.createItem(t, 1, "Far bakery", 40.7128+5.0/111.0, -74.0060)

	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude:  ptr(40.7128),
		Longitude: ptr(-74.0060),
		Radius:    ptr(MinRadius),
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Count != 0 || len(res.Results) != 0 {
		t.Fatalf("expected no results, got %d", res.Count)
	}
}

func TestNearbyRejectsBadInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	cases := []NearbyRequest{
		{Latitude: ptr(91.0), Longitude: ptr(0.0)},
		{Latitude: ptr(0.0), Longitude: ptr(-200.0)},
		{Latitude: ptr(0.0)},
		{Latitude: ptr(0.0), Longitude: ptr(0.0), Radius: ptr(99)},
		{Latitude: ptr(0.0), Longitude: ptr(0.0), Radius: ptr(10001)},
		{Latitude: ptr(0.0), Longitude: ptr(0.0), FoodType: "pizza"},
	}
	for _, req := range cases {
		if _, err := env.discovery.Nearby(context.Background(), req, Viewer{}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %+v, got %v", req, err)
		}
	}
}

func TestNearbyHasNoFalsePositives(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	centerLat, centerLon := 48.8566, 2.3522
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		// scatter within roughly +-3km
		lat := centerLat + (rng.Float64()-0.5)*6/111
		lon := centerLon + (rng.Float64()-0.5)*6/111
		env.createItem(t, 1, "item", lat, lon)
	}

	const radius = 1500
	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(centerLat), Longitude: ptr(centerLon), Radius: ptr(radius),
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Count == 0 {
		t.Fatalf("expected some items inside %dm", radius)
	}
	prev := -1.0
	for _, r := range res.Results {
		m := geo.HaversineMeters(centerLat, centerLon, r.Latitude, r.Longitude)
		if m > radius+1e-6 {
			t.Fatalf("item at %.1fm leaked into a %dm search", m, radius)
		}
		if m < prev {
			t.Fatalf("results not ordered by distance")
		}
		prev = m
	}
}

func TestNearbyFilters(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createItem(t, 1, "Plain", 40.7128, -74.0060)
	vegan := env.createItem(t, 1, "Vegan bowl", 40.7129, -74.0061)
	if _, err := env.foods.Update(context.Background(), vegan.ID, Viewer{UserID: 1}, FoodItemInput{IsVegan: ptr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.0060), IsVegan: true, Category: "street",
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Count != 1 || res.Results[0].ID != vegan.ID {
		t.Fatalf("expected only the vegan item, got %d results", res.Count)
	}

	res, err = env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.0060), Category: "dessert", MaxPrice: ptr(100.0),
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Count != 0 {
		t.Fatalf("category filter ignored: %d results", res.Count)
	}
}

func TestNearbyRecordsHistoryForIdentifiedCaller(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createItem(t, 1, "Hot dog cart", 40.7128, -74.0060)

	v := Viewer{UserID: 9, Username: "searcher"}
	if _, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.0060),
	}, v); err != nil {
		t.Fatalf("nearby: %v", err)
	}
	// anonymous searches leave no trace
	if _, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.0060),
	}, Viewer{}); err != nil {
		t.Fatalf("nearby: %v", err)
	}

	rows, total, err := env.catalog.SearchHistory(context.Background(), v, 1, 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 history row, got %d", total)
	}
	h := rows[0]
	if h.Query != "Nearby search (2000m radius)" || h.ResultsCount != 1 || h.Location == "" {
		t.Fatalf("unexpected history row: %+v", h)
	}
}

func TestNearbySurvivesHistoryFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createItem(t, 1, "Hot dog cart", 40.7128, -74.0060)
	if err := env.db.Migrator().DropTable(&entity.SearchHistory{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.0060),
	}, Viewer{UserID: 3})
	if err != nil {
		t.Fatalf("history failure leaked into the response: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("expected 1 result, got %d", res.Count)
	}
}

func TestNearbyDegradesWhenGeocoderFails(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.geocoder.err = ErrUpstreamUnavailable

	res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
		Latitude: ptr(40.7128), Longitude: ptr(-74.006),
	}, Viewer{})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.SearchArea.Address != "40.7128, -74.006" || res.SearchArea.City != "Unknown" {
		t.Fatalf("expected placeholder search area, got %+v", res.SearchArea)
	}
}

func TestSearchTextThenLocation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createItem(t, 1, "Taco truck", 40.7128, -74.0060)
	env.createItem(t, 1, "Taco stand uptown", 40.8128, -74.0060) // ~11km north
	env.createItem(t, 1, "Bagel shop", 40.7129, -74.0060)

	res, err := env.discovery.Search(context.Background(), SearchRequest{Query: "taco"}, Viewer{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 2 || res.LocationContext != nil {
		t.Fatalf("expected 2 text matches without context, got %d", res.Count)
	}
	if res.Results[0].Name != "Taco stand uptown" {
		t.Fatalf("expected newest first, got %s", res.Results[0].Name)
	}

	res, err = env.discovery.Search(context.Background(), SearchRequest{
		Query: "taco", Latitude: ptr(40.7128), Longitude: ptr(-74.0060),
	}, Viewer{UserID: 4})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 1 || res.Results[0].Name != "Taco truck" || res.LocationContext == nil {
		t.Fatalf("expected only the close taco truck, got %d", res.Count)
	}

	// address is searchable too
	res, err = env.discovery.Search(context.Background(), SearchRequest{Query: "SOMEWHERE"}, Viewer{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("expected address match on all items, got %d", res.Count)
	}
}

func TestSearchValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	long := make([]byte, MaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}
	cases := []SearchRequest{
		{Query: "   "},
		{Query: string(long)},
		{Query: "taco", Latitude: ptr(95.0), Longitude: ptr(0.0)},
		{Query: "taco", Latitude: ptr(10.0)},
		{Query: "taco", Latitude: ptr(10.0), Longitude: ptr(10.0), Radius: ptr(20000)},
	}
	for _, req := range cases {
		if _, err := env.discovery.Search(context.Background(), req, Viewer{}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	}
}

func TestDiscoveryPagesReportTotalMatches(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		env.createItem(t, 1, "Crepes", 40.7128+float64(i)*0.001, -74.0060)
	}

	nearby := func(page, size int) *NearbyResult {
		t.Helper()
		res, err := env.discovery.Nearby(context.Background(), NearbyRequest{
			Latitude: ptr(40.7128), Longitude: ptr(-74.0060), Radius: ptr(1000), Page: page, PageSize: size,
		}, Viewer{})
		if err != nil {
			t.Fatalf("nearby: %v", err)
		}
		return res
	}

	first := nearby(1, 2)
	if first.Count != 5 || len(first.Results) != 2 || first.PageSize != 2 {
		t.Fatalf("page 1: count %d, %d results", first.Count, len(first.Results))
	}
	last := nearby(3, 2)
	if last.Count != 5 || len(last.Results) != 1 || last.Page != 3 {
		t.Fatalf("page 3: count %d, %d results", last.Count, len(last.Results))
	}
	if *last.Results[0].Distance < *first.Results[1].Distance {
		t.Fatalf("later pages should be farther away")
	}
	if all := nearby(0, 0); all.Count != 5 || len(all.Results) != 5 || all.PageSize != MaxPageSize {
		t.Fatalf("default page: count %d, %d results", all.Count, len(all.Results))
	}

	res, err := env.discovery.Search(context.Background(), SearchRequest{Query: "crepes", PageSize: 4, Page: 2}, Viewer{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Count != 5 || len(res.Results) != 1 {
		t.Fatalf("text search page 2: count %d, %d results", res.Count, len(res.Results))
	}
}
