package configs

import (
	"log"

	"github.com/SrwR16/RecipeHub/entity"
	"gorm.io/gorm"
)

var defaultCategories = []entity.FoodCategory{
	{Name: "Breakfast", Icon: "🍳", Color: "#F4A261"},
	{Name: "Street Food", Icon: "🌮", Color: "#E76F51"},
	{Name: "Bakery", Icon: "🥐", Color: "#E9C46A"},
	{Name: "Desserts", Icon: "🍰", Color: "#FF6B6B"},
	{Name: "Beverages", Icon: "🥤", Color: "#2A9D8F"},
	{Name: "Healthy", Icon: "🥗", Color: "#90BE6D"},
	{Name: "Snacks", Icon: "🍿", Color: "#F9C74F"},
}

// SeedCategories creates the default food categories if they are missing.
func SeedCategories(db *gorm.DB) error {
	for _, c := range defaultCategories {
		cat := c
		if err := db.Where(entity.FoodCategory{Name: cat.Name}).
			Attrs(entity.FoodCategory{Icon: cat.Icon, Color: cat.Color}).
			FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d categories", len(defaultCategories))
	return nil
}
