package domain

import "context"

// MealCategory classifies a meal within the day.
type MealCategory string

// Known meal categories.
const (
	Breakfast MealCategory = "breakfast"
	Lunch     MealCategory = "lunch"
	Dinner    MealCategory = "dinner"
	Snack     MealCategory = "snack"
)

// Valid reports whether c is one of the known meal categories.
func (c MealCategory) Valid() bool {
	switch c {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Meal is a planned meal for a user on a calendar day.
type Meal struct {
	ID       int64        `json:"id"`
	UserID   int64        `json:"userId"`
	Name     string       `json:"name"`
	Category MealCategory `json:"category"`
	Day      string       `json:"day"`
	Calories int          `json:"calories"`
}

// GroceryItem is one line on a user's grocery list.
type GroceryItem struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

// MealRepository is the port for meal-plan persistence.
type MealRepository interface {
	CreateMeal(ctx context.Context, m Meal) (int64, error)
	UpdateMeal(ctx context.Context, m Meal) error
	DeleteMeal(ctx context.Context, userID, id int64) error
	ListMeals(ctx context.Context, userID int64) ([]Meal, error)
	// ListMealsForRange returns meals with from <= day <= to, ordered by day.
	ListMealsForRange(ctx context.Context, userID int64, from, to string) ([]Meal, error)
}

// GroceryRepository is the port for grocery-list persistence.
type GroceryRepository interface {
	AddGroceryItem(ctx context.Context, item GroceryItem) (int64, error)
	SetGroceryPurchased(ctx context.Context, userID, id int64, purchased bool) error
	RemoveGroceryItem(ctx context.Context, userID, id int64) error
	ListGroceryItems(ctx context.Context, userID int64) ([]GroceryItem, error)
}
