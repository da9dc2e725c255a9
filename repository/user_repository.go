package repository

import (
	"github.com/SrwR16/RecipeHub/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository keeps the local shadow of externally managed accounts.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Ensure creates the shadow row for userID on first sight and refreshes the
// username when the token carries one.
func (r *UserRepository) Ensure(userID uint, username string) error {
	u := entity.User{ID: userID, Username: username}
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}
	if username != "" {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username"}),
		}
	}
	return r.DB.Clauses(onConflict).Create(&u).Error
}
