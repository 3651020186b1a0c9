package app_test

import (
	"context"
	"testing"

	"wellness/internal/app"
	"wellness/internal/domain"
)

type mockMealRepo struct {
	createFn func(ctx context.Context, m domain.Meal) (int64, error)
	rangeFn  func(ctx context.Context, userID int64, from, to string) ([]domain.Meal, error)
}

func (m *mockMealRepo) CreateMeal(ctx context.Context, meal domain.Meal) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, meal)
	}
	return 1, nil
}

func (m *mockMealRepo) UpdateMeal(ctx context.Context, meal domain.Meal) error { return nil }

func (m *mockMealRepo) DeleteMeal(ctx context.Context, userID, id int64) error { return nil }

func (m *mockMealRepo) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	return nil, nil
}

func (m *mockMealRepo) ListMealsForRange(ctx context.Context, userID int64, from, to string) ([]domain.Meal, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

type mockGroceryRepo struct {
	added []domain.GroceryItem
}

func (m *mockGroceryRepo) AddGroceryItem(ctx context.Context, item domain.GroceryItem) (int64, error) {
	m.added = append(m.added, item)
	return int64(len(m.added)), nil
}

func (m *mockGroceryRepo) SetGroceryPurchased(ctx context.Context, userID, id int64, purchased bool) error {
	return nil
}

func (m *mockGroceryRepo) RemoveGroceryItem(ctx context.Context, userID, id int64) error {
	return nil
}

func (m *mockGroceryRepo) ListGroceryItems(ctx context.Context, userID int64) ([]domain.GroceryItem, error) {
	return nil, nil
}

func TestPlanMeal_Validation(t *testing.T) {
	svc := app.NewMealService(&mockMealRepo{}, &mockGroceryRepo{})
	ctx := context.Background()

	tests := []struct {
		name     string
		meal     string
		category domain.MealCategory
		day      string
		calories int
	}{
		{"empty name", "", domain.Lunch, "2025-06-01", 500},
		{"bad category", "pasta", "brunch", "2025-06-01", 500},
		{"bad day", "pasta", domain.Lunch, "June 1st", 500},
		{"negative calories", "pasta", domain.Lunch, "2025-06-01", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Plan(ctx, 1, tc.meal, tc.category, tc.day, tc.calories); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPlanMeal_Success(t *testing.T) {
	repo := &mockMealRepo{
		createFn: func(_ context.Context, m domain.Meal) (int64, error) {
			if m.UserID != 3 || m.Category != domain.Dinner {
				t.Fatalf("unexpected meal: %+v", m)
			}
			return 11, nil
		},
	}
	svc := app.NewMealService(repo, &mockGroceryRepo{})

	m, err := svc.Plan(context.Background(), 3, "salmon", domain.Dinner, "2025-06-01", 640)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != 11 {
		t.Errorf("id = %d; want 11", m.ID)
	}
}

func TestBuildGroceryList(t *testing.T) {
	meals := &mockMealRepo{
		rangeFn: func(_ context.Context, _ int64, from, to string) ([]domain.Meal, error) {
			if from != "2025-06-02" || to != "2025-06-08" {
				t.Fatalf("unexpected range: %s..%s", from, to)
			}
			return []domain.Meal{
				{Name: "oatmeal", Category: domain.Breakfast, Day: "2025-06-02"},
				{Name: "chicken salad", Category: domain.Lunch, Day: "2025-06-02"},
				{Name: "oatmeal", Category: domain.Breakfast, Day: "2025-06-03"},
				{Name: "oatmeal", Category: domain.Breakfast, Day: "2025-06-04"},
			}, nil
		},
	}
	grocery := &mockGroceryRepo{}
	svc := app.NewMealService(meals, grocery)

	items, err := svc.BuildGroceryList(context.Background(), 1, "2025-06-02", "2025-06-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected one item per distinct meal, got %d", len(items))
	}
	// Sorted by name: "chicken salad" before "oatmeal".
	if items[0].Name != "chicken salad" || items[0].Quantity != 1 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Name != "oatmeal" || items[1].Quantity != 3 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
	if len(grocery.added) != 2 {
		t.Errorf("expected 2 items persisted, got %d", len(grocery.added))
	}
}

func TestBuildGroceryList_BadRange(t *testing.T) {
	svc := app.NewMealService(&mockMealRepo{}, &mockGroceryRepo{})
	ctx := context.Background()

	if _, err := svc.BuildGroceryList(ctx, 1, "nope", "2025-06-08"); err == nil {
		t.Fatal("expected error for bad from date")
	}
	if _, err := svc.BuildGroceryList(ctx, 1, "2025-06-08", "2025-06-02"); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestAddGroceryItem_DefaultsQuantity(t *testing.T) {
	grocery := &mockGroceryRepo{}
	svc := app.NewMealService(&mockMealRepo{}, grocery)

	item, err := svc.AddGroceryItem(context.Background(), 1, "milk", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d; want 1", item.Quantity)
	}
}
