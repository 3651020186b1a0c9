package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"wellness/internal/domain"
)

// MealService encapsulates meal-planning and grocery-list use cases.
type MealService struct {
	meals   domain.MealRepository
	grocery domain.GroceryRepository
}

// NewMealService creates a MealService backed by the given repositories.
func NewMealService(meals domain.MealRepository, grocery domain.GroceryRepository) *MealService {
	return &MealService{meals: meals, grocery: grocery}
}

func validateMeal(name string, category domain.MealCategory, day string, calories int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if !category.Valid() {
		return errors.New("category must be one of breakfast, lunch, dinner, snack")
	}
	if _, err := time.ParseInLocation(domain.DayFormat, day, time.Local); err != nil {
		return errors.New("day must be a valid YYYY-MM-DD date")
	}
	if calories < 0 {
		return errors.New("calories must not be negative")
	}
	return nil
}

// Plan stores a new planned meal.
func (s *MealService) Plan(ctx context.Context, userID int64, name string, category domain.MealCategory, day string, calories int) (*domain.Meal, error) {
	if err := validateMeal(name, category, day, calories); err != nil {
		return nil, err
	}
	m := domain.Meal{UserID: userID, Name: name, Category: category, Day: day, Calories: calories}
	id, err := s.meals.CreateMeal(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

// Update overwrites an existing meal owned by the user.
func (s *MealService) Update(ctx context.Context, userID, id int64, name string, category domain.MealCategory, day string, calories int) error {
	if err := validateMeal(name, category, day, calories); err != nil {
		return err
	}
	return s.meals.UpdateMeal(ctx, domain.Meal{
		ID: id, UserID: userID, Name: name, Category: category, Day: day, Calories: calories,
	})
}

// Delete removes a meal owned by the user.
func (s *MealService) Delete(ctx context.Context, userID, id int64) error {
	return s.meals.DeleteMeal(ctx, userID, id)
}

// List returns all of the user's planned meals.
func (s *MealService) List(ctx context.Context, userID int64) ([]domain.Meal, error) {
	meals, err := s.meals.ListMeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []domain.Meal{}
	}
	return meals, nil
}

// AddGroceryItem adds one line to the user's grocery list.
func (s *MealService) AddGroceryItem(ctx context.Context, userID int64, name string, quantity int) (*domain.GroceryItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	item := domain.GroceryItem{UserID: userID, Name: name, Quantity: quantity}
	id, err := s.grocery.AddGroceryItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return &item, nil
}

// SetPurchased flips the purchased flag on a grocery item.
func (s *MealService) SetPurchased(ctx context.Context, userID, id int64, purchased bool) error {
	return s.grocery.SetGroceryPurchased(ctx, userID, id, purchased)
}

// RemoveGroceryItem deletes a grocery item.
func (s *MealService) RemoveGroceryItem(ctx context.Context, userID, id int64) error {
	return s.grocery.RemoveGroceryItem(ctx, userID, id)
}

// GroceryList returns the user's grocery list.
func (s *MealService) GroceryList(ctx context.Context, userID int64) ([]domain.GroceryItem, error) {
	items, err := s.grocery.ListGroceryItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.GroceryItem{}
	}
	return items, nil
}

// BuildGroceryList folds the meals planned between from and to (inclusive)
// into grocery items: one item per distinct meal name, quantity counting how
// often it appears in the range. The created items are returned.
func (s *MealService) BuildGroceryList(ctx context.Context, userID int64, from, to string) ([]domain.GroceryItem, error) {
	fromDay, err := time.ParseInLocation(domain.DayFormat, from, time.Local)
	if err != nil {
		return nil, errors.New("from must be a valid YYYY-MM-DD date")
	}
	toDay, err := time.ParseInLocation(domain.DayFormat, to, time.Local)
	if err != nil {
		return nil, errors.New("to must be a valid YYYY-MM-DD date")
	}
	if toDay.Before(fromDay) {
		return nil, errors.New("to must not be before from")
	}

	meals, err := s.meals.ListMealsForRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, m := range meals {
		counts[m.Name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]domain.GroceryItem, 0, len(names))
	for _, name := range names {
		item := domain.GroceryItem{UserID: userID, Name: name, Quantity: counts[name]}
		id, err := s.grocery.AddGroceryItem(ctx, item)
		if err != nil {
			return nil, err
		}
		item.ID = id
		items = append(items, item)
	}
	return items, nil
}
