package entity

type FoodCategory struct {
	UUIDModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
	Color       string `gorm:"size:7;default:#FF6B6B" json:"color"`

	// deleting a category deletes its items
	FoodItems []FoodItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
