package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wellness/internal/app"
	"wellness/internal/domain"
)

type mockWeightRepo struct {
	upsertFn  func(ctx context.Context, e domain.WeightEntry) (bool, error)
	historyFn func(ctx context.Context, userID int64) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) UpsertEntry(ctx context.Context, e domain.WeightEntry) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, e)
	}
	return true, nil
}

func (m *mockWeightRepo) History(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID)
	}
	return nil, nil
}

type mockUserRepo struct {
	dobFn func(ctx context.Context, userID int64) (time.Time, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string, dateOfBirth time.Time) (*domain.User, error) {
	return &domain.User{ID: 1, Username: username, DateOfBirth: dateOfBirth}, nil
}

func (m *mockUserRepo) DateOfBirth(ctx context.Context, userID int64) (time.Time, error) {
	if m.dobFn != nil {
		return m.dobFn(ctx, userID)
	}
	return time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) { return 1, nil }

func ptr[T any](v T) *T { return &v }

func validInput(date string) app.WeightInput {
	return app.WeightInput{
		Weight: ptr(80.5),
		Height: ptr(180.0),
		BMI:    ptr(24.8),
		Date:   ptr(date),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordWeight_Success(t *testing.T) {
	var stored domain.WeightEntry
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, e domain.WeightEntry) (bool, error) {
			stored = e
			return true, nil
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})
	svc.SetNow(fixedClock(time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)))

	res, err := svc.RecordWeight(context.Background(), 7, validInput("2025-06-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Age != 35 {
		t.Errorf("age = %d; want 35", res.Age)
	}
	if !res.Created {
		t.Error("expected created=true")
	}
	if stored.UserID != 7 || stored.Date != "2025-06-09" || stored.Age != 35 {
		t.Errorf("unexpected stored entry: %+v", stored)
	}
}

func TestRecordWeight_UpdateMessage(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ domain.WeightEntry) (bool, error) { return false, nil },
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})
	svc.SetNow(fixedClock(time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)))

	res, err := svc.RecordWeight(context.Background(), 1, validInput("2025-06-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created {
		t.Error("expected created=false")
	}
	if res.Message != "Weight entry updated successfully" {
		t.Errorf("unexpected message: %q", res.Message)
	}
}

func TestRecordWeight_MissingFields(t *testing.T) {
	users := &mockUserRepo{
		dobFn: func(_ context.Context, _ int64) (time.Time, error) {
			t.Fatal("user lookup must not run when fields are missing")
			return time.Time{}, nil
		},
	}
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ domain.WeightEntry) (bool, error) {
			t.Fatal("gateway must not be called when fields are missing")
			return false, nil
		},
	}
	svc := app.NewWeightService(repo, users)

	in := app.WeightInput{Weight: ptr(70.5), Height: ptr(175.0)}
	_, err := svc.RecordWeight(context.Background(), 1, in)
	assertKind(t, err, app.KindMissingFields)
}

func TestRecordWeight_UserNotFound(t *testing.T) {
	users := &mockUserRepo{
		dobFn: func(_ context.Context, _ int64) (time.Time, error) {
			return time.Time{}, domain.ErrNotFound
		},
	}
	svc := app.NewWeightService(&mockWeightRepo{}, users)

	_, err := svc.RecordWeight(context.Background(), 99, validInput("2025-06-01"))
	if !errors.Is(err, app.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecordWeight_RangeChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*app.WeightInput)
		kind   string
	}{
		{"zero weight", func(in *app.WeightInput) { in.Weight = ptr(0.0) }, app.KindInvalidWeight},
		{"negative weight", func(in *app.WeightInput) { in.Weight = ptr(-4.0) }, app.KindInvalidWeight},
		{"huge weight", func(in *app.WeightInput) { in.Weight = ptr(1000.5) }, app.KindInvalidWeight},
		{"zero height", func(in *app.WeightInput) { in.Height = ptr(0.0) }, app.KindInvalidHeight},
		{"huge height", func(in *app.WeightInput) { in.Height = ptr(301.0) }, app.KindInvalidHeight},
		{"zero bmi", func(in *app.WeightInput) { in.BMI = ptr(0.0) }, app.KindInvalidBMI},
		{"huge bmi", func(in *app.WeightInput) { in.BMI = ptr(100.1) }, app.KindInvalidBMI},
		{"garbage date", func(in *app.WeightInput) { in.Date = ptr("not-a-date") }, app.KindInvalidDate},
		{"impossible date", func(in *app.WeightInput) { in.Date = ptr("2025-02-30") }, app.KindInvalidDate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockWeightRepo{
				upsertFn: func(_ context.Context, _ domain.WeightEntry) (bool, error) {
					t.Fatal("gateway must not be called for invalid input")
					return false, nil
				},
			}
			svc := app.NewWeightService(repo, &mockUserRepo{})
			in := validInput("2025-06-01")
			tc.mutate(&in)
			_, err := svc.RecordWeight(context.Background(), 1, in)
			assertKind(t, err, tc.kind)
		})
	}
}

func TestRecordWeight_FutureDate(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, &mockUserRepo{})
	svc.SetNow(fixedClock(time.Date(2025, time.June, 10, 23, 30, 0, 0, time.Local)))

	_, err := svc.RecordWeight(context.Background(), 1, validInput("2025-06-11"))
	assertKind(t, err, app.KindFutureDate)

	// Same-day submissions are allowed right up to midnight.
	if _, err := svc.RecordWeight(context.Background(), 1, validInput("2025-06-10")); err != nil {
		t.Fatalf("same-day submission rejected: %v", err)
	}
}

func TestRecordWeight_ConstraintMapsToEntryFailed(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ domain.WeightEntry) (bool, error) {
			return false, fmt.Errorf("%w: fk violation", domain.ErrConstraint)
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})
	_, err := svc.RecordWeight(context.Background(), 1, validInput("2025-06-01"))
	assertKind(t, err, app.KindEntryFailed)
}

func TestRecordWeight_RepoError(t *testing.T) {
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, _ domain.WeightEntry) (bool, error) {
			return false, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})
	_, err := svc.RecordWeight(context.Background(), 1, validInput("2025-06-01"))
	if err == nil {
		t.Fatal("expected error from repo")
	}
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("store failure must not surface as a validation error, got kind %s", verr.Kind)
	}
}

// The submitted bmi is stored without being recomputed from weight and
// height, even when the three disagree. This pins the pass-through behavior
// so a future reconciliation is a deliberate change.
func TestRecordWeight_BMINotRecomputed(t *testing.T) {
	var stored domain.WeightEntry
	repo := &mockWeightRepo{
		upsertFn: func(_ context.Context, e domain.WeightEntry) (bool, error) {
			stored = e
			return true, nil
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})

	in := app.WeightInput{
		Weight: ptr(80.0),
		Height: ptr(180.0), // actual bmi would be ~24.7
		BMI:    ptr(99.0),
		Date:   ptr("2025-06-01"),
	}
	if _, err := svc.RecordWeight(context.Background(), 1, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.BMI != 99.0 {
		t.Errorf("bmi = %v; want the client value 99.0 stored verbatim", stored.BMI)
	}
}

func TestHistory_EmptyIsNotAnError(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, &mockUserRepo{})
	entries, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}
}

func assertKind(t *testing.T, err error, kind string) {
	t.Helper()
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != kind {
		t.Fatalf("kind = %s; want %s", verr.Kind, kind)
	}
}
