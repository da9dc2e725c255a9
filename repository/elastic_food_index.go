package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"
)

// FoodIndex mirrors active food items into an external search index.
type FoodIndex interface {
	Index(ctx context.Context, item *entity.FoodItem) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// NoopIndex is used when no search index is configured.
type NoopIndex struct{}

func (NoopIndex) Index(context.Context, *entity.FoodItem) error { return nil }
func (NoopIndex) Remove(context.Context, uuid.UUID) error       { return nil }

// FoodDocument is the indexed shape of a food item.
type FoodDocument struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	FoodType       string           `json:"food_type"`
	Category       string           `json:"category"`
	RestaurantName string           `json:"restaurant_name"`
	Address        string           `json:"address"`
	City           string           `json:"city"`
	Country        string           `json:"country"`
	Price          float64          `json:"price"`
	Currency       string           `json:"currency"`
	IsVegetarian   bool             `json:"is_vegetarian"`
	IsVegan        bool             `json:"is_vegan"`
	IsGlutenFree   bool             `json:"is_gluten_free"`
	IsHalal        bool             `json:"is_halal"`
	Location       elastic.GeoPoint `json:"location"`
}

const foodIndexMapping = `{
  "mappings": {
    "properties": {
      "id":              {"type": "keyword"},
      "name":            {"type": "text"},
      "description":     {"type": "text"},
      "food_type":       {"type": "keyword"},
      "category":        {"type": "keyword"},
      "restaurant_name": {"type": "text"},
      "address":         {"type": "text"},
      "city":            {"type": "keyword"},
      "country":         {"type": "keyword"},
      "price":           {"type": "scaled_float", "scaling_factor": 100},
      "currency":        {"type": "keyword"},
      "is_vegetarian":   {"type": "boolean"},
      "is_vegan":        {"type": "boolean"},
      "is_gluten_free":  {"type": "boolean"},
      "is_halal":        {"type": "boolean"},
      "location":        {"type": "geo_point"}
    }
  }
}`

type ElasticFoodIndex struct {
	Client    *elastic.Client
	IndexName string
}

// NewElasticFoodIndex connects to url. Sniffing is off so a single node
// behind a proxy or container network works.
func NewElasticFoodIndex(url, index string, opts ...elastic.ClientOptionFunc) (*ElasticFoodIndex, error) {
	opts = append([]elastic.ClientOptionFunc{elastic.SetURL(url), elastic.SetSniff(false)}, opts...)
	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("elastic client: %w", err)
	}
	return &ElasticFoodIndex{Client: client, IndexName: index}, nil
}

// EnsureIndex creates the index with its geo_point mapping when missing.
func (es *ElasticFoodIndex) EnsureIndex(ctx context.Context) error {
	exists, err := es.Client.IndexExists(es.IndexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", es.IndexName, err)
	}
	if exists {
		return nil
	}
	created, err := es.Client.CreateIndex(es.IndexName).BodyString(foodIndexMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index %s: %w", es.IndexName, err)
	}
	if !created.Acknowledged {
		log.Printf("create index %s was not acknowledged", es.IndexName)
	}
	return nil
}

func (es *ElasticFoodIndex) Index(ctx context.Context, item *entity.FoodItem) error {
	if !item.IsActive {
		return es.Remove(ctx, item.ID)
	}
	_, err := es.Client.Index().
		Index(es.IndexName).
		Id(item.ID.String()).
		BodyJson(toDocument(item)).
		Do(ctx)
	return err
}

// Remove deletes the document; a missing document is not an error.
func (es *ElasticFoodIndex) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := es.Client.Delete().Index(es.IndexName).Id(id.String()).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

// Bulk indexes items in one request and returns the number of failed operations.
func (es *ElasticFoodIndex) Bulk(ctx context.Context, items []entity.FoodItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	bulk := es.Client.Bulk()
	for i := range items {
		req := elastic.NewBulkIndexRequest().
			Index(es.IndexName).
			Id(items[i].ID.String()).
			Doc(toDocument(&items[i]))
		bulk = bulk.Add(req)
	}
	res, err := bulk.Do(ctx)
	if err != nil {
		return 0, err
	}
	failed := res.Failed()
	for _, f := range failed {
		if f.Error != nil {
			log.Printf("index %s: %s", f.Id, f.Error.Reason)
		}
	}
	return len(failed), nil
}

func toDocument(item *entity.FoodItem) FoodDocument {
	return FoodDocument{
		ID:             item.ID.String(),
		Name:           item.Name,
		Description:    item.Description,
		FoodType:       string(item.FoodType),
		Category:       item.Category.Name,
		RestaurantName: item.RestaurantName,
		Address:        item.Address,
		City:           item.City,
		Country:        item.Country,
		Price:          item.Price,
		Currency:       item.Currency,
		IsVegetarian:   item.IsVegetarian,
		IsVegan:        item.IsVegan,
		IsGlutenFree:   item.IsGlutenFree,
		IsHalal:        item.IsHalal,
		Location:       elastic.GeoPoint{Lat: item.Latitude, Lon: item.Longitude},
	}
}
