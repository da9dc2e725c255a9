package entity

type FoodType string

const (
	FoodTypeHomemade   FoodType = "homemade"
	FoodTypeRestaurant FoodType = "restaurant"
	FoodTypeStreetFood FoodType = "street_food"
	FoodTypeBakery     FoodType = "bakery"
	FoodTypeDessert    FoodType = "dessert"
	FoodTypeBeverage   FoodType = "beverage"
	FoodTypeSnack      FoodType = "snack"
	FoodTypeOther      FoodType = "other"
)

func (t FoodType) Valid() bool {
	switch t {
	case FoodTypeHomemade, FoodTypeRestaurant, FoodTypeStreetFood, FoodTypeBakery,
		FoodTypeDessert, FoodTypeBeverage, FoodTypeSnack, FoodTypeOther:
		return true
	}
	return false
}
