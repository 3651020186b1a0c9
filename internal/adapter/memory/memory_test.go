package memory_test

import (
	"context"
	"testing"
	"time"

	"wellness/internal/adapter/memory"
	"wellness/internal/domain"
)

func entry(userID int64, date string, weight float64) domain.WeightEntry {
	return domain.WeightEntry{
		UserID: userID, Date: date, Weight: weight, Height: 180, Age: 35, BMI: 24.7,
	}
}

func TestUpsertEntry_InsertThenUpdate(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	created, err := db.UpsertEntry(ctx, entry(1, "2025-06-01", 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("first upsert should create")
	}

	created, err = db.UpsertEntry(ctx, entry(1, "2025-06-01", 79.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("second upsert for the same day should update, not create")
	}

	history, err := db.History(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one entry per (user, date), got %d", len(history))
	}
	if history[0].Weight != 79.5 {
		t.Errorf("weight = %v; want the overwritten 79.5", history[0].Weight)
	}
}

func TestHistory_OrderedByDateAscending(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	// Insert out of order.
	for _, d := range []string{"2025-06-03", "2025-06-01", "2025-06-02"} {
		if _, err := db.UpsertEntry(ctx, entry(1, d, 80)); err != nil {
			t.Fatalf("upsert %s: %v", d, err)
		}
	}

	history, err := db.History(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-06-01", "2025-06-02", "2025-06-03"}
	if len(history) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(history))
	}
	for i, d := range want {
		if history[i].Date != d {
			t.Errorf("history[%d].Date = %s; want %s", i, history[i].Date, d)
		}
	}
}

func TestHistory_ScopedToUser(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	if _, err := db.UpsertEntry(ctx, entry(1, "2025-06-01", 80)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.UpsertEntry(ctx, entry(2, "2025-06-01", 60)); err != nil {
		t.Fatal(err)
	}

	history, err := db.History(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].Weight != 60 {
		t.Fatalf("unexpected history for user 2: %+v", history)
	}
}

func TestDateOfBirth(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	dob := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	u, err := db.Create(ctx, "alice", "hash", dob)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := db.DateOfBirth(ctx, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dob) {
		t.Errorf("dob = %v; want %v", got, dob)
	}

	if _, err := db.DateOfBirth(ctx, 999); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}

	// Users without a recorded date of birth also signal not-found.
	sso, err := db.Create(ctx, "sso", "", time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.DateOfBirth(ctx, sso.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing dob, got %v", err)
	}
}

func TestMealRangeAndGrocery(t *testing.T) {
	db := memory.New()
	ctx := context.Background()

	meals := []domain.Meal{
		{UserID: 1, Name: "oatmeal", Category: domain.Breakfast, Day: "2025-06-01"},
		{UserID: 1, Name: "salmon", Category: domain.Dinner, Day: "2025-06-05"},
		{UserID: 1, Name: "toast", Category: domain.Breakfast, Day: "2025-06-10"},
	}
	for _, m := range meals {
		if _, err := db.CreateMeal(ctx, m); err != nil {
			t.Fatalf("create meal: %v", err)
		}
	}

	got, err := db.ListMealsForRange(ctx, 1, "2025-06-01", "2025-06-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 meals in range, got %d", len(got))
	}

	id, err := db.AddGroceryItem(ctx, domain.GroceryItem{UserID: 1, Name: "milk", Quantity: 2})
	if err != nil {
		t.Fatalf("add grocery: %v", err)
	}
	if err := db.SetGroceryPurchased(ctx, 1, id, true); err != nil {
		t.Fatalf("set purchased: %v", err)
	}
	items, err := db.ListGroceryItems(ctx, 1)
	if err != nil {
		t.Fatalf("list grocery: %v", err)
	}
	if len(items) != 1 || !items[0].Purchased {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestUpcomingAppointments_SortedAndFiltered(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	now := time.Now()

	appointments := []domain.Appointment{
		{UserID: 1, Title: "later", StartsAt: now.Add(72 * time.Hour)},
		{UserID: 1, Title: "past", StartsAt: now.Add(-time.Hour)},
		{UserID: 1, Title: "sooner", StartsAt: now.Add(24 * time.Hour)},
	}
	for _, a := range appointments {
		if _, err := db.AddAppointment(ctx, a); err != nil {
			t.Fatalf("add appointment: %v", err)
		}
	}

	got, err := db.ListUpcomingAppointments(ctx, 1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "sooner" || got[1].Title != "later" {
		t.Fatalf("unexpected upcoming list: %+v", got)
	}
}
