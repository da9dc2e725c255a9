package services

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/SrwR16/RecipeHub/configs"
	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubGeocoder struct {
	loc   *Location
	geo   *GeocodeResult
	err   error
	calls atomic.Int32
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return g.geo, nil
}

func (g *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	loc := *g.loc
	loc.Latitude, loc.Longitude = lat, lon
	return &loc, nil
}

type stubPlaces struct {
	places []Place
	err    error
}

func (p *stubPlaces) FindNearby(ctx context.Context, lat, lon, radiusKm float64, placeType string) ([]Place, error) {
	return p.places, p.err
}

type testEnv struct {
	db        *gorm.DB
	geocoder  *stubGeocoder
	foods     *FoodItemService
	discovery *DiscoveryService
	reviews   *ReviewService
	favorites *FavoriteService
	catalog   *CatalogService
	category  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &configs.Config{DBDriver: "sqlite", DBSource: filepath.Join(t.TempDir(), "foodmap.db")}
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := configs.SetupDatabase(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := configs.SeedCategories(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var cat entity.FoodCategory
	if err := db.Where("name = ?", "Street Food").First(&cat).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}

	geocoder := &stubGeocoder{loc: &Location{
		FormattedAddress: "1 Centre St, Manhattan, New York, United States",
		City:             "New York",
		Country:          "United States",
	}}
	places := &stubPlaces{places: []Place{{Name: "Joe's", Distance: 0.2}}}

	items := repository.NewFoodItemRepository(db)
	categories := repository.NewCategoryRepository(db)
	favs := repository.NewFavoriteRepository(db)
	reviews := repository.NewReviewRepository(db)
	history := repository.NewSearchHistoryRepository(db)
	users := repository.NewUserRepository(db)

	foods := NewFoodItemService(items, categories, favs, reviews, users, geocoder, nil)
	return &testEnv{
		db:        db,
		geocoder:  geocoder,
		foods:     foods,
		discovery: NewDiscoveryService(items, foods, history, users, NewLocationService(geocoder, places)),
		reviews:   NewReviewService(reviews, items, users),
		favorites: NewFavoriteService(favs, items, users, foods),
		catalog:   NewCatalogService(categories, history),
		category:  cat.ID,
	}
}

func ptr[T any](v T) *T { return &v }

// createItem stores an item owned by owner at (lat, lon).
func (e *testEnv) createItem(t *testing.T, owner uint, name string, lat, lon float64) *FoodItemView {
	t.Helper()
	view, err := e.foods.Create(context.Background(), Viewer{UserID: owner, Username: "user"}, FoodItemInput{
		Name:       ptr(name),
		CategoryID: ptr(e.category),
		Price:      ptr(4.5),
		Latitude:   ptr(lat),
		Longitude:  ptr(lon),
		Address:    ptr("somewhere"),
		City:       ptr("New York"),
		Country:    ptr("United States"),
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return view
}
