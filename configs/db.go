package configs

import (
	"fmt"

	"github.com/SrwR16/RecipeHub/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectionDB opens the store selected by cfg.DBDriver.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite", "":
		dialector = sqlite.New(sqlite.Config{DriverName: SQLiteDriverName(), DSN: cfg.DBSource})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver != "postgres" {
		// one writer keeps sqlite free of "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.FoodCategory{},
		&entity.FoodItem{},
		&entity.FoodItemImage{},
		&entity.FoodItemReview{},
		&entity.UserFavoriteFoodItem{},
		&entity.SearchHistory{},
	)
}
